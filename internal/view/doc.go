// Package view holds the server's HTML pages. Components are written in
// .templ files and compiled with `templ generate`.
package view
