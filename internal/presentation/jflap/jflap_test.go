package jflap_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/aretw0/turnstile/internal/presentation/jflap"
	"github.com/aretw0/turnstile/internal/testutils"
	"github.com/aretw0/turnstile/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, jflap.Export(&buf, domain.MustNew(testutils.ContainsOne())))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<?xml"))
	assert.Contains(t, out, "<type>fa</type>")
	assert.Contains(t, out, `<state id="0" name="q0">`)
	assert.Contains(t, out, "<initial></initial>")
	assert.Contains(t, out, "<final></final>")
	assert.Equal(t, 4, strings.Count(out, "<transition>"))
	assert.Contains(t, out, "<from>0</from>")
	assert.Contains(t, out, "<read>1</read>")
}

func TestExportImport_RoundTrip(t *testing.T) {
	for name, desc := range map[string]domain.Description{
		"starts_with_one": testutils.StartsWithOne(),
		"one_peg":         testutils.OnePeg(),
	} {
		t.Run(name, func(t *testing.T) {
			original := domain.MustNew(desc)

			var buf bytes.Buffer
			require.NoError(t, jflap.Export(&buf, original))

			imported, err := jflap.Import(&buf)
			require.NoError(t, err)
			assert.True(t, domain.Equivalent(original, imported))
		})
	}
}

func TestImport_SparseIDs(t *testing.T) {
	doc := `<structure><type>fa</type><automaton>
  <state id="10" name="a"><initial/></state>
  <state id="20" name="b"><final/></state>
  <transition><from>10</from><to>20</to><read>x</read></transition>
  <transition><from>20</from><to>10</to><read>x</read></transition>
</automaton></structure>`

	dfa, err := jflap.Import(strings.NewReader(doc))
	require.NoError(t, err)

	ok, err := dfa.Accepts([]string{"x", "x", "x"})
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestImport_Malformed(t *testing.T) {
	tests := map[string]string{
		"not xml":    `<structure>`,
		"wrong type": `<structure><type>pda</type><automaton/></structure>`,
		"no initial": `<structure><type>fa</type><automaton><state id="0" name="q0"/></automaton></structure>`,
		"incomplete": `<structure><type>fa</type><automaton>
  <state id="0" name="q0"><initial/></state>
  <state id="1" name="q1"/>
  <transition><from>0</from><to>1</to><read>a</read></transition>
</automaton></structure>`,
		"nondeterministic": `<structure><type>fa</type><automaton>
  <state id="0" name="q0"><initial/></state>
  <transition><from>0</from><to>0</to><read>a</read></transition>
  <transition><from>0</from><to>0</to><read>a</read></transition>
</automaton></structure>`,
		"unknown target": `<structure><type>fa</type><automaton>
  <state id="0" name="q0"><initial/></state>
  <transition><from>0</from><to>5</to><read>a</read></transition>
</automaton></structure>`,
	}

	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := jflap.Import(strings.NewReader(doc))
			assert.ErrorIs(t, err, domain.ErrMalformedDescription)
		})
	}
}
