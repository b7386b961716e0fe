// Debug tool: extract a single Python file and dump the resulting
// entities. Useful for checking what the extractor sees in a file
// without running a full repository extraction.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/typeminer/typeminer/internal/extract"
)

func main() {
	path := "testdata/python/simple.py"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	source, err := os.ReadFile(path)
	if err != nil {
		log.Fatal(err)
	}

	module, err := extract.NewExtractor().ExtractModule(path, string(source))
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("=== FUNCTIONS ===")
	fmt.Printf("Count: %d\n", len(module.Functions))
	for _, f := range module.Functions {
		fmt.Printf("  %s\n", f.Signature)
		if f.Annotations != "" {
			fmt.Printf("    annotations: %q\n", f.Annotations)
		}
	}

	fmt.Println("\n=== CLASSES ===")
	fmt.Printf("Count: %d\n", len(module.Classes))
	for _, c := range module.Classes {
		fmt.Printf("  %s (superclasses: %v)\n", c.Identifier, c.Superclasses)
		for _, m := range c.Methods {
			marker := ""
			if m.Constructor {
				marker = " [constructor]"
			}
			fmt.Printf("    %s%s\n", m.Signature, marker)
		}
		for _, f := range c.Fields {
			if f.Type != nil {
				fmt.Printf("    field %s: %s\n", f.Name, *f.Type)
			} else {
				fmt.Printf("    field %s\n", f.Name)
			}
		}
	}
}
