package tree_test

import (
	"fmt"

	"github.com/shunsvineyard/forest/lib/tree"
)

func Example() {
	inventory := tree.NewRBTree[int, string]()
	inventory.Insert(23, "screwdriver")
	inventory.Insert(4, "hammer")
	inventory.Insert(30, "wrench")
	inventory.Insert(11, "pliers")
	inventory.Insert(7, "saw")

	if err := inventory.Remove(30); err != nil {
		fmt.Println(err)
	}

	inventory.Foreach(func(idx int64, id int, name string) bool {
		fmt.Printf("%d: %s\n", id, name)
		return true
	})

	it := tree.NewIterator(inventory, tree.OutOrder)
	for it.Next() {
		fmt.Printf("desc %d\n", it.Key())
	}

	// Output:
	// 4: hammer
	// 7: saw
	// 11: pliers
	// 23: screwdriver
	// desc 23
	// desc 11
	// desc 7
	// desc 4
}
