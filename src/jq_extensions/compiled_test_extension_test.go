package jq_extensions

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_compiled_test(t *testing.T) {
	require.Equal(t, true, Compiled_test("ST-42", []any{"^ST-[0-9]+$"}))
	require.Equal(t, false, Compiled_test("nope", []any{"^ST-[0-9]+$"}))

	// cache hit path
	require.Equal(t, true, Compiled_test("ST-7", []any{"^ST-[0-9]+$"}))
}

func Test_compiled_test_oniguruma_named_groups(t *testing.T) {
	require.Equal(t, true, Compiled_test("ST-42", []any{"^(?<prefix>ST)-"}))
}

func Test_compiled_test_errors(t *testing.T) {
	_, ok := Compiled_test(7, []any{"^ST"}).(error)
	require.True(t, ok)

	_, ok = Compiled_test("ST-42", []any{7}).(error)
	require.True(t, ok)

	_, ok = Compiled_test("ST-42", []any{"("}).(error)
	require.True(t, ok)
}
