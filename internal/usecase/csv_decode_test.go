package usecase

import (
	"errors"
	"testing"

	"go-candidate-registry/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertMalformed(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperror.CodeMalformedCSV, appErr.Code)
}

func TestDecodeCSV(t *testing.T) {
	t.Run("Should decode header and ordered rows with verbatim values", func(t *testing.T) {
		data := []byte("external_ref,name,age\nCND-001, Alice ,30\nCND-002,Bob,\n")
		headers, rows, err := decodeCSV(data)
		require.NoError(t, err)

		assert.Equal(t, []string{"external_ref", "name", "age"}, headers)
		require.Len(t, rows, 2)
		assert.Equal(t, 1, rows[0].num)
		assert.Equal(t, 2, rows[1].num)
		// no trimming on decode
		assert.Equal(t, " Alice ", rows[0].fields["name"])
		assert.Equal(t, "", rows[1].fields["age"])
	})

	t.Run("Should handle quoted fields containing delimiters and newlines", func(t *testing.T) {
		data := []byte("external_ref,name,notes\nCND-001,Alice,\"line one\nline two, with comma\"\n")
		_, rows, err := decodeCSV(data)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "line one\nline two, with comma", rows[0].fields["notes"])
	})

	t.Run("Should fail on empty file", func(t *testing.T) {
		_, _, err := decodeCSV([]byte(""))
		assertMalformed(t, err)

		_, _, err = decodeCSV([]byte("   \n  "))
		assertMalformed(t, err)
	})

	t.Run("Should fail on unbalanced quoting", func(t *testing.T) {
		_, _, err := decodeCSV([]byte("external_ref,name\nCND-001,\"broken\n"))
		assertMalformed(t, err)
	})

	t.Run("Should fail on inconsistent field count", func(t *testing.T) {
		_, _, err := decodeCSV([]byte("external_ref,name\nCND-001,Alice,extra\n"))
		assertMalformed(t, err)
	})

	t.Run("Should fail on blank line instead of skipping it", func(t *testing.T) {
		_, _, err := decodeCSV([]byte("external_ref,name\nCND-001,Alice\n\nCND-002,Bob\n"))
		assertMalformed(t, err)
	})

	t.Run("Should accept a single trailing newline", func(t *testing.T) {
		_, rows, err := decodeCSV([]byte("external_ref,name\nCND-001,Alice\n"))
		require.NoError(t, err)
		assert.Len(t, rows, 1)
	})

	t.Run("Should accept header-only file as zero rows", func(t *testing.T) {
		headers, rows, err := decodeCSV([]byte("external_ref,name\n"))
		require.NoError(t, err)
		assert.Equal(t, []string{"external_ref", "name"}, headers)
		assert.Empty(t, rows)
	})
}

func TestValidateRawHeader(t *testing.T) {
	assert.NoError(t, validateRawHeader("external_ref,name,age"))

	t.Run("Should fail on empty header cell", func(t *testing.T) {
		assertMalformed(t, validateRawHeader("external_ref,,age"))
		assertMalformed(t, validateRawHeader("external_ref,   ,age"))
	})

	t.Run("Should fail on duplicate header name", func(t *testing.T) {
		assertMalformed(t, validateRawHeader("external_ref,name,name"))
	})
}

func TestHeaderWarnings(t *testing.T) {
	t.Run("Should warn once per unrecognized column", func(t *testing.T) {
		warnings := headerWarnings([]string{"external_ref", "name", "favorite_color"})
		require.Len(t, warnings, 1)
		assert.Equal(t, "UNKNOWN_HEADER", warnings[0].Type)
		assert.Contains(t, warnings[0].Message, "favorite_color")
	})

	t.Run("Should return empty list for fully recognized header", func(t *testing.T) {
		warnings := headerWarnings([]string{"external_ref", "name", "age", "nationality", "origin", "notes"})
		assert.Empty(t, warnings)
	})
}

func TestNormalize(t *testing.T) {
	n := normalize("　 Alice 　")
	require.NotNil(t, n)
	assert.Equal(t, "Alice", *n)

	assert.Nil(t, normalize(""))
	assert.Nil(t, normalize("   "))
	assert.Nil(t, normalize("　　"))
}
