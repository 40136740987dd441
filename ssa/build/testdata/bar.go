package main

func bar() {
	println("bar")
}
