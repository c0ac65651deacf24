package wrapper_test

import (
	"fmt"

	"github.com/BrandonKowalski/navstack/pkg/navstack/navnode"
	"github.com/BrandonKowalski/navstack/pkg/navstack/wrapper"
)

func Example() {
	reg := wrapper.NewRegistry().
		Register("tabs", func(c wrapper.Container) (any, error) {
			return fmt.Sprintf("bottom bar, branch %d selected", c.ActiveBranch), nil
		})

	tabs := navnode.NewTab("tabs", 1,
		navnode.NewScreen("home", "/home"),
		navnode.NewScreen("search", "/search"),
	)
	split := navnode.NewPane("split",
		navnode.PrimarySlot(navnode.NewScreen("list", "/list")),
		navnode.SecondarySlot(navnode.NewScreen("detail", "/detail"), true),
	)
	layout := wrapper.DefaultLayout{Mode: wrapper.PaneCompact}

	for _, n := range []navnode.Node{tabs, split} {
		out, _ := wrapper.RenderWith(reg, layout, n)
		fmt.Printf("%s: %v\n", n.Key(), out)
	}
	fmt.Println("compact roles:", layout.VisibleRoles(split))

	// Output:
	// tabs: bottom bar, branch 1 selected
	// split: {split}
	// compact roles: [primary]
}
