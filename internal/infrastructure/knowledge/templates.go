package knowledge

// CodeTemplates returns the built-in snippet table. It is not consulted by
// Search.
func CodeTemplates() map[string]string {
	return map[string]string{
		"hello world":  `System.out.println("Hello, World!");`,
		"for loop":     "for (int i = 0; i < n; i++) {\n    // code here\n}",
		"if statement": "if (condition) {\n    // code here\n}",
	}
}
