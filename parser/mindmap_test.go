package parser

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseMindmapCSV_SharedPrefixes(t *testing.T) {
	src := `Project,Planning,Requirements
Project,Planning,Timeline
Project,Development,Backend
Project,Development,Frontend
`
	root, err := ParseMindmapCSV(src)
	require.NoError(t, err)
	require.Equal(t, "Project", root.Name)
	require.Len(t, root.Children, 2)

	planning := root.Child("Planning")
	require.NotNil(t, planning)
	require.Len(t, planning.Children, 2)
	require.Equal(t, "Requirements", planning.Children[0].Name)
	require.Equal(t, "Timeline", planning.Children[1].Name)

	dev := root.Child("Development")
	require.NotNil(t, dev)
	require.Len(t, dev.Children, 2)
}

func TestParseMindmapCSV_DuplicateRowsCollapse(t *testing.T) {
	src := `Root,A,B
Root,A,B
Root,A,C
`
	root, err := ParseMindmapCSV(src)
	require.NoError(t, err)
	a := root.Child("A")
	require.NotNil(t, a)
	require.Len(t, a.Children, 2)
}

func TestParseMindmapCSV_ShortRowsSkipped(t *testing.T) {
	src := `Root,Child
OnlyRoot
`
	root, err := ParseMindmapCSV(src)
	require.NoError(t, err)
	require.Len(t, root.Children, 1)
	require.Equal(t, "Child", root.Children[0].Name)
}

func TestParseMindmapCSV_Empty(t *testing.T) {
	_, err := ParseMindmapCSV("   \n\n  ")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrEmptySource)
}

func TestParseMindmapOutline_HeadingsAndBullets(t *testing.T) {
	src := `# Project
## Planning
- Requirements
- Timeline
## Development
### Backend
- API
`
	root, err := ParseMindmapOutline(src)
	require.NoError(t, err)
	require.Equal(t, "Project", root.Name)
	require.Len(t, root.Children, 2)

	planning := root.Children[0]
	require.Equal(t, "Planning", planning.Name)
	require.Len(t, planning.Children, 2)
	require.Equal(t, "Requirements", planning.Children[0].Name)

	dev := root.Children[1]
	require.Equal(t, "Development", dev.Name)
	require.Len(t, dev.Children, 1)
	backend := dev.Children[0]
	require.Equal(t, "Backend", backend.Name)
	require.Len(t, backend.Children, 1)
	require.Equal(t, "API", backend.Children[0].Name)
}

func TestParseMindmapOutline_SecondTopLevelAttachesToRoot(t *testing.T) {
	src := `# First
# Second
`
	root, err := ParseMindmapOutline(src)
	require.NoError(t, err)
	require.Equal(t, "First", root.Name)
	require.Len(t, root.Children, 1)
	require.Equal(t, "Second", root.Children[0].Name)
}

func TestParseMindmap_AutoDetect(t *testing.T) {
	outline, err := ParseMindmap("# Root\n- Leaf\n")
	require.NoError(t, err)
	require.Equal(t, "Root", outline.Name)

	csvRoot, err := ParseMindmap("Root,Leaf\n")
	require.NoError(t, err)
	require.Equal(t, "Root", csvRoot.Name)
	require.Len(t, csvRoot.Children, 1)
}

func TestParseMindmap_BOMAndCRLF(t *testing.T) {
	src := "\ufeffRoot,Child\r\nRoot,Other\r\n"
	root, err := ParseMindmap(src)
	require.NoError(t, err)
	require.Equal(t, "Root", root.Name)
	require.Len(t, root.Children, 2)
}
