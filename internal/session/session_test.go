package session

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rakapratama/permit-extractor/internal/entity"
)

func TestSetOverwritesPreviousBatch(t *testing.T) {
	s := New()
	assert.Nil(t, s.Current())

	first := &entity.BatchResult{TotalFiles: 1}
	s.Set(first)
	assert.Same(t, first, s.Current())

	second := &entity.BatchResult{TotalFiles: 2}
	s.Set(second)
	assert.Same(t, second, s.Current(), "a new submission replaces the previous batch")
}
