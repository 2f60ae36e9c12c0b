package ahocorasick

// byteFrequencies maps each byte value to a relative frequency rank in typical text;
// lower values mark rarer bytes, which make better prefilter candidates.
var byteFrequencies = [256]byte{
	157, 156, 155, 154, 153, 152, 151, 150, 149, 160, 159, 148, 147, 158, 146, 145,
	144, 143, 142, 141, 140, 139, 138, 137, 136, 135, 134, 133, 132, 131, 130, 129,
	255, 188, 185, 174, 173, 172, 170, 186, 183, 182, 169, 167, 191, 184, 192, 177,
	202, 201, 200, 199, 198, 197, 196, 195, 194, 193, 189, 190, 165, 166, 164, 187,
	175, 226, 209, 217, 219, 228, 213, 212, 221, 224, 206, 207, 218, 215, 223, 225,
	210, 204, 220, 222, 227, 216, 208, 214, 205, 211, 203, 181, 176, 180, 171, 168,
	161, 252, 235, 243, 245, 254, 239, 238, 247, 250, 232, 233, 244, 241, 249, 251,
	236, 230, 246, 248, 253, 242, 234, 240, 231, 237, 229, 179, 163, 178, 162, 128,
	127, 126, 125, 124, 123, 122, 121, 120, 119, 118, 117, 116, 115, 114, 113, 112,
	111, 110, 109, 108, 107, 106, 105, 104, 103, 102, 101, 100, 99, 98, 97, 96,
	95, 94, 93, 92, 91, 90, 89, 88, 87, 86, 85, 84, 83, 82, 81, 80,
	79, 78, 77, 76, 75, 74, 73, 72, 71, 70, 69, 68, 67, 66, 65, 64,
	63, 62, 61, 60, 59, 58, 57, 56, 55, 54, 53, 52, 51, 50, 49, 48,
	47, 46, 45, 44, 43, 42, 41, 40, 39, 38, 37, 36, 35, 34, 33, 32,
	31, 30, 29, 28, 27, 26, 25, 24, 23, 22, 21, 20, 19, 18, 17, 16,
	15, 14, 13, 12, 11, 10, 9, 8, 7, 6, 5, 4, 3, 2, 1, 0,
}
