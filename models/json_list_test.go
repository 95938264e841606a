package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSONList_TolerantInputs(t *testing.T) {
	for _, raw := range []string{"", "   ", "null", "{not json", `{"name":"x"}`, `"a string"`} {
		t.Run(raw, func(t *testing.T) {
			skills := ParseJSONList[Skill](raw)
			require.NotNil(t, skills)
			assert.Empty(t, skills)
			assert.Equal(t, "[]", skills.String())
		})
	}
}

func TestParseJSONList_PreservesOrder(t *testing.T) {
	skills := ParseJSONList[Skill](`[{"name":"Go","rating":5},{"name":"SQL","rating":3}]`)
	require.Len(t, skills, 2)
	assert.Equal(t, Skill{Name: "Go", Rating: 5}, skills[0])
	assert.Equal(t, Skill{Name: "SQL", Rating: 3}, skills[1])
}

func TestJSONList_Scan(t *testing.T) {
	var links JSONList[SocialLink]
	require.NoError(t, links.Scan([]byte(`[{"platform":"github","handle":"octo"}]`)))
	assert.Equal(t, JSONList[SocialLink]{{Platform: "github", Handle: "octo"}}, links)

	require.NoError(t, links.Scan(nil))
	assert.Empty(t, links)

	require.NoError(t, links.Scan("garbage"))
	assert.Empty(t, links)

	assert.Error(t, links.Scan(42))
}

func TestJSONList_Value(t *testing.T) {
	var empty JSONList[string]
	v, err := empty.Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)

	v, err = JSONList[string]{"web", "seo"}.Value()
	require.NoError(t, err)
	assert.Equal(t, `["web","seo"]`, v)
}

func TestJSONList_WireFormatIsJSONString(t *testing.T) {
	member := TeamMember{Name: "Ana", Skills: JSONList[Skill]{{Name: "Go", Rating: 4}}}
	b, err := json.Marshal(member)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(b, &raw))
	assert.Equal(t, `[{"name":"Go","rating":4}]`, raw["skills"])
	assert.Equal(t, "[]", raw["social_media"])
}

func TestJSONList_UnmarshalAcceptsStringOrArray(t *testing.T) {
	var fromString TeamMember
	require.NoError(t, json.Unmarshal([]byte(`{"skills":"[{\"name\":\"Go\",\"rating\":5}]"}`), &fromString))
	assert.Equal(t, JSONList[Skill]{{Name: "Go", Rating: 5}}, fromString.Skills)

	var fromArray TeamMember
	require.NoError(t, json.Unmarshal([]byte(`{"skills":[{"name":"Go","rating":5}]}`), &fromArray))
	assert.Equal(t, fromString.Skills, fromArray.Skills)

	var malformed TeamMember
	require.NoError(t, json.Unmarshal([]byte(`{"skills":"oops","social_media":null}`), &malformed))
	assert.Empty(t, malformed.Skills)
	assert.Empty(t, malformed.SocialMedia)
}

func TestClampRating(t *testing.T) {
	assert.Equal(t, 1, ClampRating(-3))
	assert.Equal(t, 1, ClampRating(0))
	assert.Equal(t, 3, ClampRating(3))
	assert.Equal(t, 5, ClampRating(9))
}
