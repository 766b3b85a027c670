// tagtint - distinct map colours for the most referenced country tags
//
// tagtint ranks the country tags of a Paradox game install by how often the
// game's scripts mention them and reassigns colours so the most prominent
// countries are the easiest to tell apart.
//
// Copyright (c) 2025 John Mylchreest
// Licensed under the MIT License
package main

import "github.com/jmylchreest/tagtint/internal/cli"

func main() {
	cli.Execute()
}
