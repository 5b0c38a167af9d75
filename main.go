// Command covdungeon turns JavaScript functions into coverage dungeons.
package main

import "github.com/mouse-blink/covdungeon/cmd"

func main() {
	cmd.Execute()
}
