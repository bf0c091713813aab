/*
Package dsl provides a fluent Go builder for constructing form definitions
programmatically instead of loading them from YAML. This is useful for
dynamic form generation, unit tests, and leveraging IDE autocompletion and
type-checking.

Example usage:

	package main

	import (
		"github.com/formflow/formflow"
		"github.com/formflow/formflow/pkg/dsl"
	)

	func main() {
		b := dsl.New("signup").Title("Sign Up").Behavior("field")

		card := b.Card("account").Title("Your Account")
		set := card.Set("credentials")

		set.Field("email").
			Title("Email").
			Text("email").Required()

		set.Field("plan").
			Title("Plan").
			Radio("plan", "free").
			Radio("plan", "pro").
			ShowIf("{email}^=a")

		form, err := b.Build()
		if err != nil {
			// ...
		}
		engine, _ := formflow.New(form)
		_ = engine
	}
*/
package dsl
