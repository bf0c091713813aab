package formflow_test

import (
	"context"
	"fmt"
	"log"

	"github.com/formflow/formflow"
	"github.com/formflow/formflow/pkg/domain"
	"github.com/formflow/formflow/pkg/dsl"
)

// ExampleNew demonstrates driving a form built with the Go DSL: answer the
// current field, advance, and read the published state.
func ExampleNew() {
	b := dsl.New("contact").Behavior("field")
	set := b.Card("main").Set("questions")
	set.Field("name").Title("Name").Text("name").Required()
	set.Field("email").Title("Email").Text("email")

	form, err := b.Build()
	if err != nil {
		log.Fatal(err)
	}

	engine, err := formflow.New(form)
	if err != nil {
		log.Fatal(err)
	}
	defer engine.Destroy()

	ctx := context.Background()
	if err := engine.Start(ctx); err != nil {
		log.Fatal(err)
	}

	field, _ := engine.Current(domain.LevelField)
	fmt.Println("current:", field.ID)

	// The forward guard denies the move while the required name is empty.
	moved, _ := engine.Next(ctx)
	fmt.Println("moved while empty:", moved)

	if err := engine.SetInput(ctx, "name", "Alice"); err != nil {
		log.Fatal(err)
	}
	moved, _ = engine.Next(ctx)
	fmt.Println("moved after answering:", moved)

	field, _ = engine.Current(domain.LevelField)
	fmt.Println("current:", field.ID)

	// Output:
	// current: name
	// moved while empty: false
	// moved after answering: true
	// current: email
}

// ExampleEngine_SetInput shows how conditional visibility reacts to answers.
func ExampleEngine_SetInput() {
	b := dsl.New("gated").Behavior("field")
	set := b.Card("main").Set("s")
	set.Field("plan").Radio("plan", "free").Radio("plan", "pro")
	set.Field("billing").ShowIf("{plan} = pro").Text("cc")

	form, err := b.Build()
	if err != nil {
		log.Fatal(err)
	}
	engine, err := formflow.New(form)
	if err != nil {
		log.Fatal(err)
	}
	defer engine.Destroy()

	ctx := context.Background()
	if err := engine.Start(ctx); err != nil {
		log.Fatal(err)
	}

	probe := func() {
		_, included := engine.State().Levels[domain.LevelField].Validity["billing"]
		fmt.Println("billing included:", included)
	}

	probe()
	if err := engine.SetInput(ctx, "plan", "pro"); err != nil {
		log.Fatal(err)
	}
	probe()

	// Output:
	// billing included: false
	// billing included: true
}
