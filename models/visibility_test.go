package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVisibility(t *testing.T) {
	div := "div-1"
	other := "div-2"
	t.Run(`hr sees everyone`, func(t *testing.T) {
		v := NewVisibility("hr", HRAdminRole, nil)
		require.True(t, v.Allows("emp", &other))
		require.True(t, v.AllowsDivision(other))
	})
	t.Run(`manager sees managed divisions and self`, func(t *testing.T) {
		v := NewVisibility("mgr", ManagerRole, []string{div})
		require.True(t, v.Allows("emp", &div))
		require.True(t, v.Allows("mgr", nil))
		require.False(t, v.Allows("emp", &other))
		require.False(t, v.Allows("emp", nil))
		require.True(t, v.AllowsDivision(div))
		require.False(t, v.AllowsDivision(other))
	})
	t.Run(`employee sees self only`, func(t *testing.T) {
		v := NewVisibility("emp", EmployeeRole, []string{div})
		require.Empty(t, v.DivisionIDs)
		require.True(t, v.Allows("emp", &div))
		require.False(t, v.Allows("emp2", &div))
	})
}
