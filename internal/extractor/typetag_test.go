package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePythonAnnotation(t *testing.T) {
	cases := map[string]string{
		"str":                  "string",
		"int":                  "int",
		"float":                "float",
		"bool":                 "bool",
		"bytes":                "bytes",
		"Any":                  "any",
		"typing.Any":           "any",
		"Optional[int]":        "optional<int>",
		"typing.Optional[str]": "optional<string>",
		"int | None":           "optional<int>",
		"None | int":           "optional<int>",
		"Union[str, None]":     "optional<string>",
		"Union[int, str]":      "any",
		"int | str | None":     "optional<any>",
		"List[str]":            "list<string>",
		"list[int]":            "list<int>",
		"Sequence[User]":       "list<reference<User>>",
		"Dict[str, int]":       "map<string,int>",
		"dict[str, User]":      "map<string,reference<User>>",
		"dict":                 "map<any,any>",
		"list":                 "list<any>",
		"Tuple[int, str]":      "list<any>",
		"User":                 "reference<User>",
		"models.User":          "reference<User>",
		`"User"`:               "reference<User>",
		"datetime.datetime":    "reference<datetime>",
		"Optional[List[int]]":  "optional<list<int>>",
		"":                     "any",
	}
	for input, want := range cases {
		assert.Equal(t, want, NormalizePythonAnnotation(input), "annotation %q", input)
	}
}

func TestNormalizeGoType(t *testing.T) {
	cases := map[string]string{
		"string":            "string",
		"int64":             "int",
		"byte":              "int",
		"float64":           "float",
		"bool":              "bool",
		"[]byte":            "bytes",
		"any":               "any",
		"interface{}":       "any",
		"*string":           "optional<string>",
		"[]string":          "list<string>",
		"[]*User":           "list<optional<reference<User>>>",
		"map[string]int":    "map<string,int>",
		"map[string][]int":  "map<string,list<int>>",
		"time.Time":         "reference<Time>",
		"User":              "reference<User>",
		"*User":             "optional<reference<User>>",
		"chan int":          "any",
		"func(int) error":   "any",
		"map[int64]float64": "map<int,float>",
	}
	for input, want := range cases {
		assert.Equal(t, want, NormalizeGoType(input), "type %q", input)
	}
}

func TestOptionalityIsDistinct(t *testing.T) {
	assert.NotEqual(t, NormalizePythonAnnotation("int"), NormalizePythonAnnotation("Optional[int]"))
	assert.NotEqual(t, NormalizeGoType("int"), NormalizeGoType("*int"))
}
