package nav

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func activeHrefs(items []RenderedItem) []string {
	var out []string
	for _, it := range items {
		if it.Active {
			out = append(out, it.Href)
		}
	}
	return out
}

func TestBuildMarksActiveSection(t *testing.T) {
	t.Parallel()

	require.Equal(t, []string{"/"}, activeHrefs(Build("")))
	require.Equal(t, []string{"/courses"}, activeHrefs(Build("/courses/ros2-beginner")))
	require.Equal(t, []string{"/workshops"}, activeHrefs(Build("/workshop/ros2-urdf-slam")))
	require.Empty(t, activeHrefs(Build("/coursesx")))
}

func TestBreadcrumbs(t *testing.T) {
	t.Parallel()

	crumbs := Breadcrumbs("/courses/ros2-beginner", map[string]string{"ros2-beginner": "ROS 2 for Beginners"})
	require.Len(t, crumbs, 3)
	require.Equal(t, "nav.home", crumbs[0].LabelKey)
	require.Equal(t, "nav.courses", crumbs[1].LabelKey)
	require.False(t, crumbs[1].Active)
	require.Equal(t, "ROS 2 for Beginners", crumbs[2].Label)
	require.True(t, crumbs[2].Active)

	crumbs = Breadcrumbs("/products/custom-robot", nil)
	require.Equal(t, "Custom Robot", crumbs[2].Label)

	crumbs = Breadcrumbs("/workshop/ros2-basics-roadmap", nil)
	require.Equal(t, "/workshops", crumbs[1].Href)
	require.Equal(t, "nav.workshops", crumbs[1].LabelKey)
}
