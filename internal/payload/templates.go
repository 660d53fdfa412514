package payload

import (
	"errors"
	"fmt"
	"sort"

	"optimus-bench/internal/api"
)

// ErrUnknownLanguage is returned when no job template is registered for the
// requested language tag. Callers treat it as fatal before any dispatch.
var ErrUnknownLanguage = errors.New("unknown language")

const pythonSource = `def fibonacci(n):
    if n <= 1:
        return n
    return fibonacci(n-1) + fibonacci(n-2)

result = fibonacci(10)
print(f"Fibonacci(10) = {result}")
`

const javaSource = `public class Solution {
    public static int factorial(int n) {
        if (n <= 1) return 1;
        return n * factorial(n - 1);
    }

    public static void main(String[] args) {
        int result = factorial(5);
        System.out.println("Factorial(5) = " + result);
    }
}
`

const rustSource = `fn sum_array(arr: &[i32]) -> i32 {
    arr.iter().sum()
}

fn main() {
    let numbers = vec![1, 2, 3, 4, 5];
    let result = sum_array(&numbers);
    println!("Sum = {}", result);
}
`

// One canonical JobSpec per language, built once and reused for every request.
var templates = map[string]api.JobSpec{
	"python": {
		Language:   "python",
		SourceCode: pythonSource,
		TestCases: []api.TestCase{
			{ID: 1, Input: "", ExpectedOutput: "Fibonacci(10) = 55\n"},
		},
		TimeoutMS: 10000,
	},
	"java": {
		Language:   "java",
		SourceCode: javaSource,
		TestCases: []api.TestCase{
			{ID: 1, Input: "", ExpectedOutput: "Factorial(5) = 120\n"},
		},
		TimeoutMS: 15000,
	},
	"rust": {
		Language:   "rust",
		SourceCode: rustSource,
		TestCases: []api.TestCase{
			{ID: 1, Input: "", ExpectedOutput: "Sum = 15\n"},
		},
		TimeoutMS: 15000,
	},
}

// ForLanguage returns the canonical JobSpec for a language tag. The returned
// spec owns its test case slice, so callers cannot mutate the registry.
func ForLanguage(language string) (api.JobSpec, error) {
	tpl, ok := templates[language]
	if !ok {
		return api.JobSpec{}, fmt.Errorf("%w: %q", ErrUnknownLanguage, language)
	}
	cases := make([]api.TestCase, len(tpl.TestCases))
	copy(cases, tpl.TestCases)
	tpl.TestCases = cases
	return tpl, nil
}

// Languages lists the registered language tags in sorted order.
func Languages() []string {
	langs := make([]string, 0, len(templates))
	for lang := range templates {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}
