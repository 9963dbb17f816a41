// Package sheets - обертка над Google Sheets API для реестра геозон и журнала посещений.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/shenikar/geo_checkin/internal/errs"
)

const valueInputOption = "USER_ENTERED"

// Credentials - данные сервисного аккаунта и идентификатор таблицы
type Credentials struct {
	ServiceAccountEmail string
	PrivateKey          string
	SpreadsheetID       string
}

// Validate проверяет, что все обязательные поля заданы
func (c Credentials) Validate() error {
	var missing []string
	if c.ServiceAccountEmail == "" {
		missing = append(missing, "GOOGLE_SERVICE_ACCOUNT_EMAIL")
	}
	if c.PrivateKey == "" {
		missing = append(missing, "GOOGLE_PRIVATE_KEY")
	}
	if c.SpreadsheetID == "" {
		missing = append(missing, "GOOGLE_SHEET_ID")
	}
	if len(missing) > 0 {
		return &errs.DataSourceError{
			Source: "sheets",
			Err:    fmt.Errorf("missing configuration: %s", strings.Join(missing, ", ")),
		}
	}
	return nil
}

// Client читает и дописывает строки в одну таблицу
type Client struct {
	values        *sheetsapi.SpreadsheetsValuesService
	spreadsheetID string
}

// New создает клиента с авторизацией по JWT сервисного аккаунта
func New(ctx context.Context, creds Credentials) (*Client, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	conf := &jwt.Config{
		Email: creds.ServiceAccountEmail,
		// в переменных окружения ключ обычно хранится с экранированными переводами строк
		PrivateKey: []byte(strings.ReplaceAll(creds.PrivateKey, `\n`, "\n")),
		Scopes:     []string{sheetsapi.SpreadsheetsScope},
		TokenURL:   google.JWTTokenURL,
	}

	srv, err := sheetsapi.NewService(ctx, option.WithHTTPClient(conf.Client(ctx)))
	if err != nil {
		return nil, &errs.DataSourceError{Source: "sheets", Err: fmt.Errorf("failed to create sheets service: %w", err)}
	}
	return NewWithService(srv, creds.SpreadsheetID), nil
}

// NewWithService используется, когда сервис уже создан (например, в тестах с httptest)
func NewWithService(srv *sheetsapi.Service, spreadsheetID string) *Client {
	return &Client{
		values:        srv.Spreadsheets.Values,
		spreadsheetID: spreadsheetID,
	}
}

// ReadRows возвращает значения диапазона в виде строк
func (c *Client) ReadRows(ctx context.Context, rangeName string) ([][]string, error) {
	resp, err := c.values.Get(c.spreadsheetID, rangeName).Context(ctx).Do()
	if err != nil {
		return nil, &errs.DataSourceError{Source: "sheets", Err: fmt.Errorf("failed to read range %s: %w", rangeName, err)}
	}
	return stringifyRows(resp.Values), nil
}

// AppendRow дописывает строку в конец диапазона
func (c *Client) AppendRow(ctx context.Context, rangeName string, values []any) error {
	if len(values) == 0 {
		return errors.New("sheets: empty row")
	}
	vr := &sheetsapi.ValueRange{Values: [][]interface{}{values}}
	_, err := c.values.Append(c.spreadsheetID, rangeName, vr).
		ValueInputOption(valueInputOption).
		Context(ctx).
		Do()
	if err != nil {
		return &errs.DataSourceError{Source: "sheets", Err: fmt.Errorf("failed to append to %s: %w", rangeName, err)}
	}
	return nil
}

func stringifyRows(values [][]interface{}) [][]string {
	rows := make([][]string, len(values))
	for i, row := range values {
		cells := make([]string, len(row))
		for j, v := range row {
			if v == nil {
				continue
			}
			cells[j] = fmt.Sprint(v)
		}
		rows[i] = cells
	}
	return rows
}
