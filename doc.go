// Package main provides the entry point of authorsite.
//
// authorsite serves a personal author website: public pages for the hero, about,
// books and blog sections, a json api the admin console uses to edit that content,
// the colour theme, the site settings and the media library, and a resolver that
// turns the active palette into css variables injected before the first paint.
// The same binary carries a small command line client for the theme, the palettes
// and the local admin session.
package main
