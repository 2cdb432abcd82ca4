// Package uniuri generates random strings from a fixed alphabet using crypto/rand.
// Media uploads use it to name stored files.
package uniuri
