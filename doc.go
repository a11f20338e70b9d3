/*
Package icon renders Sugar icons: vector or raster icon files, recolored
through the fill_color and stroke_color entities of the Sugar artwork,
optionally badged with a second icon and greyed out for insensitive widgets.

A Buffer collects the parameters of an icon and turns them into a Surface.
Surfaces and parsed documents are kept in bounded LRU caches shared by the
whole process, so asking twice for the same icon renders it once:

	package main

	import (
		"log"

		"github.com/disintegration/imaging"
		"github.com/sugarlabs/icon"
	)

	func main() {
		buf := icon.NewBuffer()
		buf.SetIconName("computer-xo")
		buf.SetXoColor("#FF2B34,#4BFF3A")
		buf.SetBadgeName("emblem-favorite")
		buf.SetSize(55, 55)

		s := buf.GetSurface(true, nil)
		if s == nil {
			log.Fatal("no icon")
		}
		if err := imaging.Save(s.Image(), "computer-xo.png"); err != nil {
			log.Fatal(err)
		}
	}

Symbolic names are looked up in the icon themes found below the XDG data
directories, see the theme package. The widget package lays out and draws
buffers in a toolkit, and the helloicon command renders icons from the
command line.
*/
package icon
