package upload

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"

	"github.com/shenikar/geo_checkin/internal/errs"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRelay(t *testing.T, thumbnails bool) (*Relay, string) {
	t.Helper()
	root := t.TempDir()
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	return NewRelay(NewLocalStore(root), "/uploads", thumbnails, logger), root
}

func testJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func listFiles(t *testing.T, root string) []string {
	t.Helper()
	var files []string
	err := filepath.Walk(root, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			rel, _ := filepath.Rel(root, p)
			files = append(files, filepath.ToSlash(rel))
		}
		return nil
	})
	require.NoError(t, err)
	return files
}

func TestUpload_Success(t *testing.T) {
	relay, root := newTestRelay(t, false)
	photo := []byte("fake-jpeg-bytes")

	res, err := relay.Upload(context.Background(), photo, "Catedral de Tunja", "user_123")
	require.NoError(t, err)

	assert.Equal(t, "/uploads/catedral_de_tunja/user_123.jpg", res.Path)
	assert.Equal(t, "catedral_de_tunja", res.SiteKey)
	assert.Equal(t, int64(len(photo)), res.SizeBytes)
	assert.Empty(t, res.ThumbnailPath)
	assert.Nil(t, res.TakenAt)

	stored, err := os.ReadFile(filepath.Join(root, "catedral_de_tunja", "user_123.jpg"))
	require.NoError(t, err)
	assert.Equal(t, photo, stored)
}

func TestUpload_LastWriteWins(t *testing.T) {
	relay, root := newTestRelay(t, false)
	ctx := context.Background()

	_, err := relay.Upload(ctx, []byte("first"), "Catedral de Tunja", "user_123")
	require.NoError(t, err)
	_, err = relay.Upload(ctx, []byte("second"), "CATEDRAL DE TUNJA", "user_123")
	require.NoError(t, err)

	assert.Equal(t, []string{"catedral_de_tunja/user_123.jpg"}, listFiles(t, root))
	stored, err := os.ReadFile(filepath.Join(root, "catedral_de_tunja", "user_123.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "second", string(stored))
}

func TestUpload_EmptyPhoto(t *testing.T) {
	relay, root := newTestRelay(t, true)

	_, err := relay.Upload(context.Background(), nil, "Catedral de Tunja", "user_123")
	assert.True(t, errs.IsValidation(err))
	assert.Empty(t, listFiles(t, root))
}

func TestUpload_BlankSiteName(t *testing.T) {
	relay, root := newTestRelay(t, false)

	_, err := relay.Upload(context.Background(), []byte("x"), "   ", "user_123")
	var vErr *errs.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "parishName", vErr.Field)

	_, err = relay.Upload(context.Background(), []byte("x"), "Site", "")
	assert.True(t, errs.IsValidation(err))
	assert.Empty(t, listFiles(t, root))
}

func TestUpload_TraversalNeutralized(t *testing.T) {
	relay, root := newTestRelay(t, false)

	res, err := relay.Upload(context.Background(), []byte("x"), "../../etc/passwd", "../admin")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/______etc_passwd/___admin.jpg", res.Path)
	assert.Equal(t, []string{"______etc_passwd/___admin.jpg"}, listFiles(t, root))
}

func TestUpload_WithThumbnail(t *testing.T) {
	relay, root := newTestRelay(t, true)
	photo := testJPEG(t, 800, 400)

	res, err := relay.Upload(context.Background(), photo, "Santuario", "user_123")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/santuario/thumbs/user_123.jpg", res.ThumbnailPath)

	thumb, err := os.ReadFile(filepath.Join(root, "santuario", "thumbs", "user_123.jpg"))
	require.NoError(t, err)
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(thumb))
	require.NoError(t, err)
	assert.Equal(t, 320, cfg.Width)
	assert.Equal(t, 160, cfg.Height)
}

func TestUpload_NonImageSkipsThumbnail(t *testing.T) {
	relay, root := newTestRelay(t, true)

	res, err := relay.Upload(context.Background(), []byte("not an image"), "Santuario", "user_123")
	require.NoError(t, err)
	assert.Empty(t, res.ThumbnailPath)
	assert.Equal(t, []string{"santuario/user_123.jpg"}, listFiles(t, root))
}

type failingStore struct{ err error }

func (f failingStore) Save(context.Context, string, []byte) error { return f.err }

func TestUpload_StorageFailure(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	relay := NewRelay(failingStore{err: errors.New("read-only file system")}, "/uploads", false, logger)

	_, err := relay.Upload(context.Background(), []byte("x"), "Santuario", "user_123")
	assert.True(t, errs.IsStorage(err))
	assert.False(t, errs.IsValidation(err))
}

func TestLocalStore_RootIsFile(t *testing.T) {
	dir := t.TempDir()
	rootFile := filepath.Join(dir, "not-a-dir")
	require.NoError(t, os.WriteFile(rootFile, []byte("x"), 0600))

	err := NewLocalStore(rootFile).Save(context.Background(), "site/user.jpg", []byte("x"))
	assert.True(t, errs.IsStorage(err))
}

func TestLocalStore_RejectsEscape(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	for _, p := range []string{"../x.jpg", "a/../../x.jpg", "."} {
		err := store.Save(context.Background(), p, []byte("x"))
		assert.True(t, errs.IsStorage(err), p)
	}
}

func TestSanitizeKey(t *testing.T) {
	cases := map[string]string{
		"Catedral de Tunja":          "catedral_de_tunja",
		"Basílica de Chiquinquirá":   "bas_lica_de_chiquinquir_",
		"Test Location (London)":     "test_location__london_",
		"user_123":                   "user_123",
		"..":                         "__",
		"a/b\\c":                     "a_b_c",
		"\u212A\u0130":               "__",
		"ÁB":                         "_b",
	}
	for in, want := range cases {
		assert.Equal(t, want, SanitizeKey(in), in)
	}
}

func TestReadMetadata_NoExif(t *testing.T) {
	meta := ReadMetadata(testJPEG(t, 10, 10))
	assert.Nil(t, meta.TakenAt)
	assert.Nil(t, meta.Latitude)
}
