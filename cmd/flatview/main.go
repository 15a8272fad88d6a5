// Command flatview loads HTML or JSON documents as flattrees and inspects
// them as outlines: rows by flat position, folding, moving and sorting.
package main

func main() {
	execute()
}
