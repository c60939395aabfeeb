package i18n_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/ficore/internal/i18n"
)

func TestCatalog_T(t *testing.T) {
	cat := i18n.Catalog{"save": "Ajiye", "empty": ""}

	assert.Equal(t, "Ajiye", cat.T("save"))
	assert.Equal(t, "Customer Name", cat.T("customer_name"))
	assert.Equal(t, "no_such_key", cat.T("no_such_key"))
	assert.Equal(t, "empty", cat.T("empty"))

	var nilCat i18n.Catalog
	assert.Equal(t, "Save", nilCat.T("save"))
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    i18n.Catalog
		wantErr bool
	}{
		{
			name: "Wrapped",
			body: `{"translations": {"welcome": "Barka da zuwa!", "save": "Ajiye"}}`,
			want: i18n.Catalog{"welcome": "Barka da zuwa!", "save": "Ajiye"},
		},
		{
			name: "Flat",
			body: `{"welcome": "Welcome!", "save": "Save"}`,
			want: i18n.Catalog{"welcome": "Welcome!", "save": "Save"},
		},
		{
			name: "NonStringValuesIgnored",
			body: `{"save": "Save", "count": 3, "nested": {"a": "b"}}`,
			want: i18n.Catalog{"save": "Save"},
		},
		{
			name:    "Malformed",
			body:    `<html>502 Bad Gateway</html>`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := i18n.Decode(strings.NewReader(tt.body))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecode_UTF8BOM(t *testing.T) {
	body := append([]byte{0xEF, 0xBB, 0xBF}, []byte(`{"amount": "Adadin (₦)"}`)...)

	got, err := i18n.Decode(bytes.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, "Adadin (₦)", got.T("amount"))
}

func TestDecode_Latin1(t *testing.T) {
	// {"description": "Descrição"} encoded as Windows-1252.
	body := []byte{'{', '"', 'd', 'e', 's', 'c', 'r', 'i', 'p', 't', 'i', 'o', 'n', '"', ':', ' ', '"',
		'D', 'e', 's', 'c', 'r', 'i', 0xE7, 0xE3, 'o', '"', '}'}

	got, err := i18n.Decode(bytes.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, "Descrição", got.T("description"))
}

type stubSource struct {
	cat i18n.Catalog
	err error
}

func (s stubSource) Translations(_ context.Context, _ string) (i18n.Catalog, error) {
	return s.cat, s.err
}

func TestLoad(t *testing.T) {
	cat := i18n.Load(context.Background(), stubSource{cat: i18n.Catalog{"save": "Ajiye"}}, "ha")
	assert.Equal(t, "Ajiye", cat.T("save"))

	cat = i18n.Load(context.Background(), stubSource{err: errors.New("connection refused")}, "ha")
	assert.NotNil(t, cat)
	assert.Equal(t, "Save", cat.T("save"))
}
