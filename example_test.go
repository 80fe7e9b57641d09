package flexmark_test

import (
	"fmt"
	"log"

	"github.com/aretw0/flexmark"
	"github.com/aretw0/flexmark/pkg/marker"
)

func ExampleEngine_RenderHTML() {
	eng, err := flexmark.New()
	if err != nil {
		log.Fatal(err)
	}

	out, err := eng.RenderHTML([]byte("Here is =r=marked content=="))
	if err != nil {
		log.Fatal(err)
	}
	fmt.Print(out)
	// Output:
	// <p>Here is <mark class="flexible-marker flexible-marker-red">marked content</mark></p>
}

// ExampleNew_options renders marks as span elements carrying their colour.
func ExampleNew_options() {
	eng, err := flexmark.New(flexmark.WithOptions(marker.Options{
		Dictionary: marker.Dictionary{"b": "brother"},
		TagName:    marker.FixedTagName("span"),
		ClassName:  marker.BaseClassName("hl"),
		Properties: marker.PropertiesFunc(func(color string) map[string]any {
			return map[string]any{"data-color": color}
		}),
	}))
	if err != nil {
		log.Fatal(err)
	}

	out, err := eng.RenderHTML([]byte("**=b=bold marked==**"))
	if err != nil {
		log.Fatal(err)
	}
	fmt.Print(out)
	// Output:
	// <p><strong><span class="hl hl-brother" data-color="brother">bold marked</span></strong></p>
}

func ExampleEngine_Process() {
	eng, err := flexmark.New()
	if err != nil {
		log.Fatal(err)
	}

	_, stats := eng.Process([]byte("==a== and **b** c== and ===="))
	fmt.Println(stats.Single, stats.Cross, stats.Empty)
	// Output:
	// 1 0 1
}
