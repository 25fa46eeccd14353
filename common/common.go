package common

const (
	BaseWidth  = 800
	BaseHeight = 600
	TPS        = 60
	Title      = "spritescene"
)
