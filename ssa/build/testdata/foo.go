package main

func foo() {
	println("foo")
}
