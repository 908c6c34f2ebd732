package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCategory(t *testing.T) {
	t.Run("creates active root category", func(t *testing.T) {
		c, err := NewCategory("Cascos", "Protective helmets", nil)
		require.NoError(t, err)

		assert.True(t, c.IsActive)
		assert.True(t, c.IsRoot())
	})

	t.Run("creates child category", func(t *testing.T) {
		parentID := uuid.New()
		c, err := NewCategory("Integrales", "", &parentID)
		require.NoError(t, err)

		assert.False(t, c.IsRoot())
		assert.Equal(t, parentID, *c.ParentID)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewCategory("", "", nil)
		assert.Error(t, err)
	})
}

func TestCategorySetParent(t *testing.T) {
	c, err := NewCategory("Cascos", "", nil)
	require.NoError(t, err)

	t.Run("rejects self as parent", func(t *testing.T) {
		err := c.SetParent(&c.ID)
		assert.Error(t, err)
		assert.Nil(t, c.ParentID)
	})

	t.Run("accepts other parent and nil", func(t *testing.T) {
		parentID := uuid.New()
		require.NoError(t, c.SetParent(&parentID))
		assert.Equal(t, parentID, *c.ParentID)

		require.NoError(t, c.SetParent(nil))
		assert.True(t, c.IsRoot())
	})
}
