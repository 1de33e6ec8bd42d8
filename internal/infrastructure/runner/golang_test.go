package runner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/aiagent-go/internal/domain"
)

func TestGoStrategyRunsMainPackage(t *testing.T) {
	src := `package main

import (
	"fmt"
	"strings"
)

func main() {
	fmt.Println(strings.ToUpper("hello"))
}
`
	res, err := NewGoStrategy().Run(context.Background(), src)
	require.NoError(t, err)
	assert.True(t, res.Succeeded, res.Output)
	assert.Equal(t, "HELLO\n", res.Output)
	assert.Equal(t, domain.ModeInterpreted, res.Mode)
}

func TestGoStrategySnippetResult(t *testing.T) {
	res, err := NewGoStrategy().Run(context.Background(), `6 * 7`)
	require.NoError(t, err)
	assert.True(t, res.Succeeded, res.Output)
	assert.Equal(t, "Result: 42", res.Output)
}

func TestGoStrategyRejectsForbiddenImports(t *testing.T) {
	src := `package main

import (
	"fmt"
	"net/http"
)

func main() { fmt.Println(http.MethodGet) }
`
	res, err := NewGoStrategy().Run(context.Background(), src)
	require.NoError(t, err)
	assert.False(t, res.Succeeded)
	assert.Equal(t, "Go error: forbidden imports: [net/http]", res.Output)
}

func TestGoStrategyReportsCompileErrors(t *testing.T) {
	res, err := NewGoStrategy().Run(context.Background(), "package main\n\nfunc main() { undefinedCall() }\n")
	require.NoError(t, err)
	assert.False(t, res.Succeeded)
	assert.Contains(t, res.Output, "Go error: ")
	assert.Equal(t, domain.FailureScriptError, res.Failure)
}

func TestImportPathsScansSnippets(t *testing.T) {
	src := "import \"fmt\"\nimport j \"encoding/json\"\nimport (\n\t\"os\"\n\tx `net`\n)\nfmt.Println(1)"
	assert.Equal(t, []string{"fmt", "encoding/json", "os", "net"}, importPaths(src))
}

func TestGoStrategyRejectsGoroutines(t *testing.T) {
	cases := map[string]string{
		"snippet":      `go func(){ panic("boom") }()`,
		"main package": "package main\n\nfunc main() {\n\tm := map[int]int{}\n\tgo func() { m[1] = 1; panic(\"boom\") }()\n}\n",
		"busy loop":    "go func() { for {} }()",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			res, err := NewGoStrategy().Run(context.Background(), src)
			require.NoError(t, err)
			assert.False(t, res.Succeeded)
			assert.Equal(t, "Go error: "+ErrGoroutines, res.Output)
			assert.Equal(t, domain.FailureScriptError, res.Failure)
		})
	}
}

func TestGoStrategyAllowsGoKeywordInStrings(t *testing.T) {
	src := "package main\n\nimport \"fmt\"\n\n// go func() {}\nfunc main() { fmt.Println(\"go go\") }\n"
	res, err := NewGoStrategy().Run(context.Background(), src)
	require.NoError(t, err)
	assert.True(t, res.Succeeded, res.Output)
	assert.Equal(t, "go go\n", res.Output)
}

func TestGoStrategyHidesAfterFunc(t *testing.T) {
	src := "package main\n\nimport \"time\"\n\nfunc main() { time.AfterFunc(time.Millisecond, func() { panic(\"boom\") }) }\n"
	res, err := NewGoStrategy().Run(context.Background(), src)
	require.NoError(t, err)
	assert.False(t, res.Succeeded)
	assert.Equal(t, domain.FailureScriptError, res.Failure)
}
