package ai

import (
	"bytes"
	"strings"
	"text/template"

	"github.com/doeshing/aiagent-go/internal/domain"
	"github.com/doeshing/aiagent-go/internal/ports"
)

const helloWorldTemplate = `public class HelloWorld {
    public static void main(String[] args) {
        System.out.println("Hello, World!");
    }
}`

const calculatorTemplate = `public class Calculator {
    public static int add(int a, int b) {
        return a + b;
    }
    
    public static void main(String[] args) {
        System.out.println("5 + 3 = " + add(5, 3));
    }
}`

const generatedCodeTemplate = `// Generated code based on: {{.Query}}
public class GeneratedCode {
    public static void main(String[] args) {
        // Your implementation here
        System.out.println("Generated for: {{.Query}}");
    }
}`

const explanationTemplate = `This is an explanation for: {{.Query}}

The AI Agent framework is designed to provide intelligent responses to your queries. It can generate code, execute programs, and learn from interactions to improve over time.`

const generalTemplate = `I understand you're asking about: {{.Query}}

I'm an AI Agent that can help you with coding tasks, explanations, and general questions. Feel free to ask me to write code, explain concepts, or execute programs.`

// Enhancement prefixes.
const (
	CodePrefix        = "Here's some code for you:\n"
	ExplanationPrefix = "Let me explain:\n"
)

type templateData struct {
	Query string
}

// TemplateGenerator renders canned responses. Output depends only on the
// query and intent.
type TemplateGenerator struct {
	generated   *template.Template
	explanation *template.Template
	general     *template.Template
}

// NewTemplateGenerator parses the built-in templates.
func NewTemplateGenerator() *TemplateGenerator {
	return &TemplateGenerator{
		generated:   template.Must(template.New("generated").Parse(generatedCodeTemplate)),
		explanation: template.Must(template.New("explanation").Parse(explanationTemplate)),
		general:     template.Must(template.New("general").Parse(generalTemplate)),
	}
}

// Generate implements ports.ResponseGenerator.
func (g *TemplateGenerator) Generate(query string, intent domain.Intent) string {
	switch intent {
	case domain.IntentCodeGeneration:
		return g.generateCode(query)
	case domain.IntentExplanation:
		return render(g.explanation, query)
	default:
		return render(g.general, query)
	}
}

// Enhance prefixes a base response for the code and explanation intents.
func (g *TemplateGenerator) Enhance(base string, intent domain.Intent) string {
	switch intent {
	case domain.IntentCodeGeneration:
		return CodePrefix + base
	case domain.IntentExplanation:
		return ExplanationPrefix + base
	default:
		return base
	}
}

func (g *TemplateGenerator) generateCode(query string) string {
	lower := strings.ToLower(query)
	switch {
	case strings.Contains(lower, "hello world"):
		return helloWorldTemplate
	case strings.Contains(lower, "calculator"):
		return calculatorTemplate
	default:
		return render(g.generated, query)
	}
}

// render never fails for the built-in templates. On error the raw query is
// returned so callers still get deterministic text.
func render(tpl *template.Template, query string) string {
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, templateData{Query: query}); err != nil {
		return query
	}
	return buf.String()
}

var _ ports.ResponseGenerator = (*TemplateGenerator)(nil)
