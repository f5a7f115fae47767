// Package sheets wraps the Google Sheets values API behind the two operations the
// submission handler needs: authenticate and append a row.
package sheets

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

const (
	ServiceName = "google-sheets"

	// ScopeSpreadsheets allows reading and writing spreadsheet values.
	ScopeSpreadsheets = sheetsapi.SpreadsheetsScope

	ValueInputUserEntered = "USER_ENTERED"
	InsertDataInsertRows  = "INSERT_ROWS"
)

// Auth modes. Both produce an equivalent token for the same service account.
const (
	AuthModeJWT         = "jwt"
	AuthModeCredentials = "credentials"
)

// Credential identifies the service account.
type Credential struct {
	ClientEmail string
	PrivateKey  string // PEM, real newlines
	ProjectID   string
	Scopes      []string
}

type AppendRequest struct {
	SpreadsheetID    string
	Range            string
	Values           []interface{}
	ValueInputOption string
	InsertDataOption string
}

type AppendResult struct {
	SpreadsheetID string
	TableRange    string
	UpdatedRange  string
	UpdatedRows   int64
	UpdatedCells  int64
}

// Client appends rows on behalf of an authenticated service account.
type Client interface {
	AppendRow(ctx context.Context, req *AppendRequest) (*AppendResult, error)
}

// ClientFactory authenticates cred and returns a Client bound to it.
type ClientFactory func(ctx context.Context, cred Credential) (Client, error)

type Options struct {
	AuthMode   string
	Endpoint   string // Sheets API base URL override
	TokenURL   string // OAuth token endpoint override
	HTTPClient *http.Client
}

// NewFactory returns a ClientFactory that performs a fresh token exchange on
// every call. Tokens are never cached across calls.
func NewFactory(opts Options) ClientFactory {
	return func(ctx context.Context, cred Credential) (Client, error) {
		if opts.HTTPClient != nil {
			ctx = context.WithValue(ctx, oauth2.HTTPClient, opts.HTTPClient)
		}
		if len(cred.Scopes) == 0 {
			cred.Scopes = []string{ScopeSpreadsheets}
		}

		var (
			ts  oauth2.TokenSource
			err error
		)
		switch opts.AuthMode {
		case AuthModeCredentials:
			ts, err = credentialsTokenSource(ctx, cred, opts.TokenURL)
		case AuthModeJWT, "":
			ts = jwtTokenSource(ctx, cred, opts.TokenURL)
		default:
			return nil, fmt.Errorf("unsupported auth mode %q", opts.AuthMode)
		}
		if err != nil {
			return nil, err
		}

		// Fetch once so auth failures surface before the append.
		if _, err := ts.Token(); err != nil {
			return nil, err
		}

		svcOpts := []option.ClientOption{option.WithHTTPClient(oauth2.NewClient(ctx, ts))}
		if opts.Endpoint != "" {
			svcOpts = append(svcOpts, option.WithEndpoint(opts.Endpoint))
		}
		svc, err := sheetsapi.NewService(ctx, svcOpts...)
		if err != nil {
			return nil, fmt.Errorf("create sheets service: %w", err)
		}
		return NewAppender(svc), nil
	}
}

func jwtTokenSource(ctx context.Context, cred Credential, tokenURL string) oauth2.TokenSource {
	if tokenURL == "" {
		tokenURL = google.JWTTokenURL
	}
	conf := &jwt.Config{
		Email:      cred.ClientEmail,
		PrivateKey: []byte(cred.PrivateKey),
		Scopes:     cred.Scopes,
		TokenURL:   tokenURL,
	}
	return conf.TokenSource(ctx)
}

// credentialsTokenSource goes through the generic credential loader with a
// synthesized service-account key file.
func credentialsTokenSource(ctx context.Context, cred Credential, tokenURL string) (oauth2.TokenSource, error) {
	keyFile := map[string]string{
		"type":         "service_account",
		"project_id":   cred.ProjectID,
		"private_key":  cred.PrivateKey,
		"client_email": cred.ClientEmail,
		"client_id":    "",
	}
	if tokenURL != "" {
		keyFile["token_uri"] = tokenURL
	}
	data, err := json.Marshal(keyFile)
	if err != nil {
		return nil, fmt.Errorf("encode service account key: %w", err)
	}
	creds, err := google.CredentialsFromJSON(ctx, data, cred.Scopes...)
	if err != nil {
		return nil, fmt.Errorf("load service account credentials: %w", err)
	}
	return creds.TokenSource, nil
}

// Appender implements Client on top of the generated Sheets service.
type Appender struct {
	svc *sheetsapi.Service
}

func NewAppender(svc *sheetsapi.Service) *Appender {
	return &Appender{svc: svc}
}

func (a *Appender) AppendRow(ctx context.Context, req *AppendRequest) (*AppendResult, error) {
	vr := &sheetsapi.ValueRange{
		MajorDimension: "ROWS",
		Values:         [][]interface{}{req.Values},
	}

	resp, err := a.svc.Spreadsheets.Values.Append(req.SpreadsheetID, req.Range, vr).
		ValueInputOption(req.ValueInputOption).
		InsertDataOption(req.InsertDataOption).
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}

	result := &AppendResult{
		SpreadsheetID: resp.SpreadsheetId,
		TableRange:    resp.TableRange,
	}
	if resp.Updates != nil {
		result.UpdatedRange = resp.Updates.UpdatedRange
		result.UpdatedRows = resp.Updates.UpdatedRows
		result.UpdatedCells = resp.Updates.UpdatedCells
	}
	return result, nil
}
