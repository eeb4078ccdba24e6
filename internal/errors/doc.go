// Package errors provides coded, actionable errors for vango-i18n.
//
// Every error has a code that maps to a short message and a fix hint:
//
//   - E200-E219: configuration (files, strategy, locales, custom paths)
//   - E220-E239: page scanning (missing directory, parse errors, duplicates)
//   - E240-E259: command line
//
// # Usage
//
//	err := errors.New("E205").
//	    WithDetail(`defaultLocale "de" is not one of [en fr]`)
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR E205: Default locale is not a configured locale
//	//
//	//   defaultLocale "de" is not one of [en fr]
//	//
//	//   Hint: Add the default locale to locales or change defaultLocale.
//
// Page parse errors carry the location of the syntax error and the lines
// around it when built with WithLocationFromError.
package errors
