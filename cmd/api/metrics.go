package main

import "expvar"

var (
	productsCreated = expvar.NewInt("products_created")
	imagesUploaded  = expvar.NewInt("images_uploaded")
	tagFailures     = expvar.NewInt("tag_generation_failures")
)
