package validators

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValidationError(t *testing.T) {
	type testStructNested struct {
		NestedRequiredField string `validate:"required"`
		NestedEnumField     string `validate:"oneof=foo bar"`
	}

	type testStruct struct {
		RequiredField      string             `validate:"required"`
		RequiredArrayField []string           `validate:"required,gt=0,dive,not_empty"`
		EnumField          string             `validate:"oneof=foo bar"`
		DateField          string             `validate:"omitempty,date"`
		SingleArrayField   []string           `validate:"len=1"`
		UniqueArrayField   []string           `validate:"unique"`
		UnknownTagField    int                `validate:"lte=1"`
		NestedField        []testStructNested `validate:"dive"`
	}

	testCases := []struct {
		name                string
		stc                 *testStruct
		expectedFieldErrors map[string]interface{}
	}{
		{
			name: "top_level_fields",
			stc: &testStruct{
				RequiredField:      "",
				RequiredArrayField: []string{},
				EnumField:          "invalid",
				DateField:          "15/12/1995",
				SingleArrayField:   []string{"a", "b"},
				UniqueArrayField:   []string{"a", "a"},
				UnknownTagField:    1,
			},
			expectedFieldErrors: map[string]interface{}{
				"requiredField":      "This field is required",
				"requiredArrayField": "Should have at least 1 element",
				"enumField":          `Unexpected value "invalid". Expected one of the following values: foo, bar`,
				"dateField":          "Should be a date formatted as YYYY-MM-DD",
				"singleArrayField":   "Should have exactly 1 element(s)",
				"uniqueArrayField":   "Should not contain duplicated values",
			},
		},
		{
			name: "dive_into_array",
			stc: &testStruct{
				RequiredField:      "foo",
				RequiredArrayField: []string{"bar", ""},
				EnumField:          "bar",
				DateField:          "1995-12-15",
				SingleArrayField:   []string{"a"},
				UnknownTagField:    1,
			},
			expectedFieldErrors: map[string]interface{}{
				"requiredArrayField[1]": "This field cannot be empty",
			},
		},
		{
			name: "unknown_tag",
			stc: &testStruct{
				RequiredField:      "foo",
				RequiredArrayField: []string{"bar"},
				EnumField:          "bar",
				SingleArrayField:   []string{"a"},
				UnknownTagField:    2,
			},
			expectedFieldErrors: map[string]interface{}{
				"unknownTagField": "Invalid value",
			},
		},
		{
			name: "nested_struct",
			stc: &testStruct{
				RequiredField:      "foo",
				RequiredArrayField: []string{"bar"},
				EnumField:          "bar",
				SingleArrayField:   []string{"a"},
				UnknownTagField:    1,
				NestedField: []testStructNested{
					{
						NestedRequiredField: "",
						NestedEnumField:     "invalid",
					},
				},
			},
			expectedFieldErrors: map[string]interface{}{
				"nestedField[0].nestedRequiredField": "This field is required",
				"nestedField[0].nestedEnumField":     `Unexpected value "invalid". Expected one of the following values: foo, bar`,
			},
		},
	}

	val := NewValidator()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := val.Struct(tc.stc)
			require.Error(t, err)
			vErrs, ok := err.(validator.ValidationErrors)
			require.True(t, ok)
			fieldErrors := ParseValidationError(vErrs)
			assert.Equal(t, tc.expectedFieldErrors, fieldErrors)
		})
	}
}

func TestFormatFieldErrors(t *testing.T) {
	got := FormatFieldErrors(map[string]interface{}{
		"releaseDate": "Should be a date formatted as YYYY-MM-DD",
		"name":        "This field cannot be empty",
	})
	assert.Equal(t, "name: This field cannot be empty; releaseDate: Should be a date formatted as YYYY-MM-DD", got)

	assert.Equal(t, "", FormatFieldErrors(map[string]interface{}{}))
}

func TestGetFieldName(t *testing.T) {
	type testStructNested struct {
		Name     string             `validate:"not_empty"`
		Children []testStructNested `validate:"dive"`
	}

	type testStruct struct {
		Title       string             `validate:"not_empty"`
		NestedField []testStructNested `validate:"required,dive"`
	}

	stc := &testStruct{
		Title: "",
		NestedField: []testStructNested{
			{
				Name: "first",
				Children: []testStructNested{
					{
						Name: "second",
						Children: []testStructNested{
							{
								Name:     "children1",
								Children: []testStructNested{},
							},
							{
								Name: "children2",
								Children: []testStructNested{
									{
										Name:     "",
										Children: []testStructNested{},
									},
								},
							},
						},
					},
				},
			},
		},
	}
	val := NewValidator()
	err := val.Struct(stc)
	require.Error(t, err)

	vErrs, ok := err.(validator.ValidationErrors)
	require.True(t, ok)
	require.Len(t, vErrs, 2)

	assert.Equal(t, "title", getFieldName(vErrs[0]))
	assert.Equal(t, "children[0].name", getFieldName(vErrs[1]))
}

func TestLCFist(t *testing.T) {
	got := lcFirst("Name")
	assert.Equal(t, "name", got)
	got = lcFirst("ReleaseDate")
	assert.Equal(t, "releaseDate", got)
	got = lcFirst("A")
	assert.Equal(t, "a", got)
	got = lcFirst("")
	assert.Equal(t, "", got)
}
