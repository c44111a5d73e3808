package palette

// Preset names registered by NewStore.
const (
	Rainbow       = "rainbow"
	RainbowStripe = "rainbow_stripe"
	Ocean         = "ocean"
	Cloud         = "cloud"
	Lava          = "lava"
	Forest        = "forest"
	Party         = "party"
	RedWhiteBlue  = "red_white_blue"
	TripleStrange = "triple_strange"
)

const (
	black          = 0x000000
	white          = 0xFFFFFF
	red            = 0xFF0000
	blue           = 0x0000FF
	gray           = 0x808080
	orange         = 0xFFA500
	maroon         = 0x800000
	darkRed        = 0x8B0000
	darkBlue       = 0x00008B
	midnightBlue   = 0x191970
	navy           = 0x000080
	mediumBlue     = 0x0000CD
	seaGreen       = 0x2E8B57
	teal           = 0x008080
	cadetBlue      = 0x5F9EA0
	darkCyan       = 0x008B8B
	cornflowerBlue = 0x6495ED
	aquamarine     = 0x7FFFD4
	aqua           = 0x00FFFF
	lightSkyBlue   = 0x87CEFA
	skyBlue        = 0x87CEEB
	lightBlue      = 0xADD8E6
	darkGreen      = 0x006400
	darkOliveGreen = 0x556B2F
	green          = 0x008000
	forestGreen    = 0x228B22
	oliveDrab      = 0x6B8E23
	mediumAqua     = 0x66CDAA
	limeGreen      = 0x32CD32
	yellowGreen    = 0x9ACD32
	lightGreen     = 0x90EE90
	lawnGreen      = 0x7CFC00
)

var presets = map[string]Palette{
	Rainbow: FromHex([Size]uint32{
		0xFF0000, 0xD52A00, 0xAB5500, 0xAB7F00, 0xABAB00, 0x56D500, 0x00FF00, 0x00D52A,
		0x00AB55, 0x0056AA, 0x0000FF, 0x2A00D5, 0x5500AB, 0x7F0081, 0xAB0055, 0xD5002B,
	}),
	RainbowStripe: FromHex([Size]uint32{
		0xFF0000, black, 0xAB5500, black, 0xABAB00, black, 0x00FF00, black,
		0x00AB55, black, 0x0000FF, black, 0x5500AB, black, 0xAB0055, black,
	}),
	Ocean: FromHex([Size]uint32{
		midnightBlue, darkBlue, midnightBlue, navy, darkBlue, mediumBlue, seaGreen, teal,
		cadetBlue, blue, darkCyan, cornflowerBlue, aquamarine, seaGreen, aqua, lightSkyBlue,
	}),
	Cloud: FromHex([Size]uint32{
		blue, darkBlue, darkBlue, darkBlue, darkBlue, darkBlue, darkBlue, darkBlue,
		blue, darkBlue, skyBlue, skyBlue, lightBlue, white, lightBlue, skyBlue,
	}),
	Lava: FromHex([Size]uint32{
		black, maroon, black, maroon, darkRed, darkRed, maroon, darkRed,
		darkRed, darkRed, red, orange, white, orange, red, darkRed,
	}),
	Forest: FromHex([Size]uint32{
		darkGreen, darkGreen, darkOliveGreen, darkGreen, green, forestGreen, oliveDrab, green,
		seaGreen, mediumAqua, limeGreen, yellowGreen, lightGreen, lawnGreen, mediumAqua, forestGreen,
	}),
	Party: FromHex([Size]uint32{
		0x5500AB, 0x84007C, 0xB5004B, 0xE5001B, 0xE81700, 0xB84700, 0xAB7700, 0xABAB00,
		0xAB5500, 0xDD2200, 0xF2000E, 0xC2003E, 0x8F0071, 0x5F00A1, 0x2F00D0, 0x0007F9,
	}),
	RedWhiteBlue: FromHex([Size]uint32{
		red, gray, blue, black, red, gray, blue, black,
		red, red, gray, gray, blue, blue, black, black,
	}),
	// Blue, Gray, Orange, Gray repeated four times.
	TripleStrange: FromHex([Size]uint32{
		blue, gray, orange, gray, blue, gray, orange, gray,
		blue, gray, orange, gray, blue, gray, orange, gray,
	}),
}
