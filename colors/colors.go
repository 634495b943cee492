package colors

import "github.com/fatih/color"

var (
	Red    = color.New(color.FgRed).SprintFunc()
	Yellow = color.New(color.FgYellow).SprintFunc()
	Green  = color.New(color.FgGreen).SprintFunc()
	Blue   = color.New(color.FgBlue).SprintFunc()
)

// HTTPStatus colors a response status code: red for errors, yellow for
// redirects, green otherwise.
func HTTPStatus(code int) string {
	switch {
	case code >= 400:
		return Red(code)
	case code >= 300:
		return Yellow(code)
	}
	return Green(code)
}
