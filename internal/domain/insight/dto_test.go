package insight

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSessionKey_DefaultsSession(t *testing.T) {
	assert.Equal(t, SessionKey{SessionID: DefaultSessionID, EmployeeID: "e1"}, NewSessionKey("  ", "e1"))
	assert.Equal(t, SessionKey{SessionID: "tab-1", EmployeeID: "e1"}, NewSessionKey("tab-1", "e1"))
}

func TestNormalizePayload(t *testing.T) {
	got := NormalizePayload(Payload{
		Summary:  "  Reliable contributor.  ",
		Insights: []string{" Always on time ", "", "   "},
	})

	assert.Equal(t, "Reliable contributor.", got.Summary)
	assert.Equal(t, []string{"Always on time"}, got.Insights)
	assert.NotNil(t, got.AreasForDevelopment)
	assert.Empty(t, got.AreasForDevelopment)
}

func TestPayloadInput_Validate(t *testing.T) {
	assert.Error(t, (&PayloadInput{Summary: " "}).Validate())
	assert.NoError(t, (&PayloadInput{Summary: "ok"}).Validate())

	req := ApproveDraftRequest{EmployeeID: "e1"}
	assert.NoError(t, req.Validate(), "approving without a curated payload uses the draft as is")
}

func TestClone_DoesNotAlias(t *testing.T) {
	orig := Insight{Insights: []string{"a"}, AreasForDevelopment: []string{"b"}}
	c := orig.Clone()
	c.Insights[0] = "changed"
	c.AreasForDevelopment[0] = "changed"

	assert.Equal(t, "a", orig.Insights[0])
	assert.Equal(t, "b", orig.AreasForDevelopment[0])
}

func TestPayloadInput_IsZero(t *testing.T) {
	assert.True(t, PayloadInput{}.IsZero())
	assert.True(t, PayloadInput{Insights: []string{}}.IsZero())
	assert.False(t, PayloadInput{Summary: " "}.IsZero())
	assert.False(t, PayloadInput{Insights: []string{"Punctual"}}.IsZero())
}
