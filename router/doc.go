// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines the simulator's routes using Go 1.22+ method
patterns on the standard ServeMux.
*/
package router
