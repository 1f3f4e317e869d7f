package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validProfileJSON = `{
	"headline": "Senior Backend Engineer",
	"summary": "Seven years building payment infrastructure.",
	"skills": ["Go", "PostgreSQL", "Kubernetes"],
	"experience": [{"title": "Engineer", "company": "Acme"}],
	"education": [{"school": "UBC", "degree": "BSc Computer Science"}]
}`

const validMessageJSON = `{
	"subject": "Experienced engineer for your backend role",
	"greeting": "Hi Jane,",
	"opening": "I saw your posting.",
	"body": "I have shipped systems like the ones you describe.",
	"closing": "Would love to chat.",
	"signature": "Best, Alex"
}`

func TestValidateProfileSchema(t *testing.T) {
	assert.NoError(t, Validate(CandidateProfileSchema, validProfileJSON))
}

func TestValidateProfileSchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"missing headline", `{"summary":"s","skills":["a","b","c"],"experience":[{"title":"t","company":"c"}],"education":[{"school":"s","degree":"d"}]}`},
		{"two skills", `{"headline":"h","summary":"s","skills":["a","b"],"experience":[{"title":"t","company":"c"}],"education":[{"school":"s","degree":"d"}]}`},
		{"empty experience", `{"headline":"h","summary":"s","skills":["a","b","c"],"experience":[],"education":[{"school":"s","degree":"d"}]}`},
		{"empty education", `{"headline":"h","summary":"s","skills":["a","b","c"],"experience":[{"title":"t","company":"c"}],"education":[]}`},
		{"skills not array", `{"headline":"h","summary":"s","skills":"Go","experience":[{"title":"t","company":"c"}],"education":[{"school":"s","degree":"d"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(CandidateProfileSchema, tt.json)
			require.Error(t, err)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.NotEmpty(t, verr.Errors)
		})
	}
}

func TestValidateMessageSchema(t *testing.T) {
	assert.NoError(t, Validate(OutreachMessageSchema, validMessageJSON))
}

func TestValidateMessageSchemaMissingPart(t *testing.T) {
	err := Validate(OutreachMessageSchema, `{"subject":"s","greeting":"g","opening":"o","body":"b","closing":"c"}`)
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Error(), "signature")
}

func TestValidateMalformedDocument(t *testing.T) {
	err := Validate(OutreachMessageSchema, `{not json`)
	require.Error(t, err)

	var loadErr *SchemaLoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestValidateUnknownSchema(t *testing.T) {
	err := Validate("nope.schema.json", `{}`)
	require.Error(t, err)

	var loadErr *SchemaLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "nope.schema.json", loadErr.Name)
}
