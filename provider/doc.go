// Package provider retrieves deployment output values from the Azure
// Developer CLI (azd).
//
// The package exposes a small Provider capability so callers can inject a
// test double instead of spawning the real azd binary:
//
//	p := provider.NewAzdProvider(provider.Options{Environment: "dev"})
//	values, err := p.FetchValues(ctx)
//	if err != nil {
//		// handle error
//	}
//	endpoint := values["AZURE_AI_PROJECT_ENDPOINT"]
//
// azd emits environment values in one of two shapes, selected by the
// --output flag: a JSON object, or line-oriented KEY=VALUE text on older
// versions. Both are supported; each shape has its own parser.
package provider
