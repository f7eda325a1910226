package compare_test

import (
	"testing"

	"github.com/amp-labs/collections/compare"
	"github.com/amp-labs/collections/sortable"
	"github.com/stretchr/testify/assert"
)

func TestEquals(t *testing.T) {
	t.Parallel()

	assert.True(t, compare.Equals[sortable.Int](sortable.Int(1), sortable.Int(1)))
	assert.False(t, compare.Equals[sortable.Int](sortable.Int(1), sortable.Int(2)))
}

func TestFunc(t *testing.T) {
	t.Parallel()

	var cmp compare.Func[int] = func(a, b int) int { return a - b }

	assert.Negative(t, cmp(1, 2))
	assert.Zero(t, cmp(2, 2))
	assert.Positive(t, cmp(3, 2))
}
