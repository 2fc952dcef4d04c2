package attribute

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpecifierDefine(t *testing.T) {
	s := NewSpecifier().
		Define("camera", "front").
		Define("camera", "rear").
		Define("camera", "front").
		Define("fps", "30")

	attrs := s.Attributes()
	assert.Len(t, attrs, 3)
	assert.Equal(t, []string{"front", "rear"}, attrs.Get("camera"))
	assert.Equal(t, []string{"30"}, attrs.Get("fps"))
	assert.Nil(t, attrs.Get("missing"))

	// The returned set is a copy.
	attrs[0].Value = "changed"
	assert.True(t, s.Attributes().Has("camera", "front"))
}

func TestVerifierVerify(t *testing.T) {
	service := NewSpecifier().
		Define("camera", "front").
		Define("fps", "30").
		Attributes()

	tests := []struct {
		name     string
		verifier *Verifier
		wantKey  string
		wantOK   bool
	}{
		{"Nil", nil, "", true},
		{"Empty", NewVerifier(), "", true},
		{"MatchingPair", NewVerifier().Require("camera", "front"), "", true},
		{"MatchingKey", NewVerifier().RequireKey("fps"), "", true},
		{"WrongValue", NewVerifier().Require("camera", "rear"), "camera", false},
		{"MissingKey", NewVerifier().RequireKey("resolution"), "resolution", false},
		{"PairsBeforeKeys", NewVerifier().RequireKey("resolution").Require("fps", "60"), "fps", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, ok := tt.verifier.Verify(service)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantKey, key)
		})
	}
}

func TestVerifierDeduplicates(t *testing.T) {
	v := NewVerifier().
		Require("a", "1").
		Require("a", "1").
		RequireKey("b").
		RequireKey("b")

	assert.Len(t, v.Attributes(), 1)
	assert.Equal(t, []string{"b"}, v.Keys())
}

func TestSetSortedAndString(t *testing.T) {
	s := Set{{"b", "2"}, {"a", "9"}, {"a", "1"}}

	sorted := s.Sorted()
	assert.Equal(t, "a=1, a=9, b=2", sorted.String())
	// Original order is untouched.
	assert.Equal(t, "b=2, a=9, a=1", s.String())
}
