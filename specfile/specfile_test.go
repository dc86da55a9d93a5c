package specfile

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tebogen/flow"
	"tebogen/validate"
)

func TestLoadDocument(t *testing.T) {
	doc, err := Load(filepath.Join("testdata", "survey.yml"))
	require.NoError(t, err)

	assert.Equal(t, "customer_survey", doc.Name)
	assert.Equal(t, flow.StepID("name"), doc.Entry)
	assert.Len(t, doc.Steps, 5)

	require.Contains(t, doc.Validators, "yes_no")
	assert.Equal(t, []string{"yes", "no"}, doc.Validators["yes_no"].Options)

	require.Contains(t, doc.Validators, "rating")
	require.NotNil(t, doc.Validators["rating"].MinValue)
	assert.EqualValues(t, 1, *doc.Validators["rating"].MinValue)

	require.Len(t, doc.Groups, 1)
	assert.Equal(t, "contact", doc.Groups[0].Name)
	assert.True(t, doc.Groups[0].SeparateGraphics)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "no-such-file.yml"))
	assert.Error(t, err)
}

func TestParseRejectsMalformedYaml(t *testing.T) {
	_, err := Parse([]byte("steps:\n  - id: [unclosed"))
	assert.Error(t, err)
}

func TestParseToleratesStructuralDefects(t *testing.T) {
	// Dangling entry and duplicate identifiers decode fine, flagging
	// them is the compiler's job.
	doc, err := Parse([]byte(`
name: broken
entry: missing
steps:
  - id: a
    prompt: A?
    validator: text
    transitions:
      - to: a
  - id: a
    prompt: A again?
    validator: text
`))
	require.NoError(t, err)
	assert.Len(t, doc.Steps, 2)
}

func TestDocumentCompilesEndToEnd(t *testing.T) {
	doc, err := Load(filepath.Join("testdata", "survey.yml"))
	require.NoError(t, err)

	reg := validate.Builtin()
	require.NoError(t, doc.RegisterValidators(reg))

	graph, issues := flow.Compile(doc.Spec(), reg)
	require.NotNil(t, graph)
	assert.Empty(t, issues)

	assert.Equal(t, flow.StepID("name"), graph.Entry.ID)
	assert.Equal(t, []string{"yes", "no"}, graph.Nodes["satisfied"].Choices())
	assert.True(t, graph.Nodes["done"].Terminal)
}

func TestRegisterValidatorsRejectsBadDefinition(t *testing.T) {
	doc, err := Parse([]byte(`
name: bad
entry: a
validators:
  empty_choice:
    type: choice
steps:
  - id: a
    prompt: A?
    validator: text
`))
	require.NoError(t, err)

	assert.Error(t, doc.RegisterValidators(validate.Builtin()))
}

func TestRegisterValidatorsRejectsDuplicateOfBuiltin(t *testing.T) {
	doc, err := Parse([]byte(`
name: clash
entry: a
validators:
  text:
    type: text
steps:
  - id: a
    prompt: A?
    validator: text
`))
	require.NoError(t, err)

	var dup validate.DuplicateValidatorError
	assert.ErrorAs(t, doc.RegisterValidators(validate.Builtin()), &dup)
}
