// Command splitset turns a flat directory of images into a serialized tensor
// dataset split into train and test sets.
package main

func main() {
	Execute()
}
