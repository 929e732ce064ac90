package integrations_test

import (
	"fmt"

	"github.com/matzehuels/writeme/pkg/integrations"
)

func ExampleURLEncode() {
	// URL-encode special characters for API queries
	fmt.Println(integrations.URLEncode("@scope/package"))
	fmt.Println(integrations.URLEncode("package name"))
	// Output:
	// %40scope%2Fpackage
	// package+name
}
