// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rankmath

// WilcoxonLevels are the significance levels tabulated in
// wilcoxonTable, in increasing order.
var WilcoxonLevels = [...]float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.2, 0.3, 0.4, 0.5}

// Bounds of the sample sizes covered by wilcoxonTable.
const (
	WilcoxonTableMin = 4
	WilcoxonTableMax = 50
)

// wilcoxonTable holds the quantiles w_p of the Wilcoxon signed-rank
// statistic T+ for n = WilcoxonTableMin..WilcoxonTableMax (row n-4)
// at each of WilcoxonLevels, as published in Table A12 of Conover
// (1999). The values are reproduced as published, including the n=44
// entry at level 0.005.
var wilcoxonTable = [WilcoxonTableMax - WilcoxonTableMin + 1][len(WilcoxonLevels)]float64{
	{0, 0, 0, 0, 1, 3, 3, 4, 5},                     // 4
	{0, 0, 0, 1, 3, 4, 5, 6, 7.5},                   // 5
	{0, 0, 1, 3, 4, 6, 8, 9, 10.5},                  // 6
	{0, 1, 3, 4, 6, 9, 11, 12, 14},                  // 7
	{1, 2, 4, 6, 9, 12, 14, 16, 18},                 // 8
	{2, 4, 6, 9, 11, 15, 18, 20, 22.5},              // 9
	{4, 6, 9, 11, 15, 19, 22, 25, 27.5},             // 10
	{6, 8, 11, 14, 18, 23, 27, 30, 33},              // 11
	{8, 10, 14, 18, 22, 28, 32, 36, 39},             // 12
	{10, 13, 18, 22, 27, 33, 38, 42, 45.5},          // 13
	{13, 16, 22, 26, 32, 39, 44, 48, 52.5},          // 14
	{16, 20, 26, 31, 37, 45, 51, 55, 60},            // 15
	{20, 24, 30, 36, 43, 51, 58, 63, 68},            // 16
	{24, 28, 35, 42, 49, 58, 65, 71, 76.5},          // 17
	{28, 33, 41, 48, 56, 66, 73, 80, 85.5},          // 18
	{33, 38, 47, 54, 63, 74, 82, 89, 95},            // 19
	{38, 44, 53, 61, 70, 83, 91, 98, 105},           // 20
	{44, 50, 59, 68, 78, 91, 100, 108, 115.5},       // 21
	{49, 56, 67, 76, 87, 100, 110, 119, 126.5},      // 22
	{55, 63, 74, 84, 95, 110, 120, 130, 138},        // 23
	{62, 70, 82, 92, 105, 120, 131, 141, 150},       // 24
	{69, 77, 90, 101, 114, 131, 143, 153, 162.5},    // 25
	{76, 85, 99, 111, 125, 142, 155, 165, 175.5},    // 26
	{84, 94, 108, 120, 135, 154, 167, 178, 189},     // 27
	{92, 102, 117, 131, 146, 166, 180, 192, 203},    // 28
	{101, 111, 127, 141, 158, 178, 193, 206, 217.5}, // 29
	{110, 121, 138, 152, 170, 191, 207, 220, 232.5}, // 30
	{119, 131, 148, 164, 182, 205, 221, 235, 248},   // 31
	{129, 141, 160, 176, 195, 219, 236, 250, 264},   // 32
	{139, 152, 171, 188, 208, 233, 251, 266, 280.5}, // 33
	{149, 163, 183, 201, 222, 248, 266, 282, 297.5}, // 34
	{160, 175, 196, 214, 236, 263, 283, 299, 315},   // 35
	{172, 187, 209, 228, 251, 279, 299, 317, 333},   // 36
	{184, 199, 222, 242, 266, 296, 316, 335, 351.5}, // 37
	{196, 212, 236, 257, 282, 312, 334, 353, 370.5}, // 38
	{208, 225, 250, 272, 298, 329, 352, 372, 390},   // 39
	{221, 239, 265, 287, 314, 347, 371, 391, 410},   // 40
	{235, 253, 280, 303, 331, 365, 390, 411, 430.5}, // 41
	{248, 267, 295, 320, 349, 384, 409, 431, 451.5}, // 42
	{263, 282, 311, 337, 366, 403, 429, 452, 473},   // 43
	{227, 297, 328, 354, 385, 422, 450, 473, 495},   // 44
	{292, 313, 344, 372, 403, 442, 471, 495, 517.5}, // 45
	{308, 329, 362, 390, 423, 463, 492, 517, 540.5}, // 46
	{324, 346, 379, 408, 442, 484, 514, 540, 564},   // 47
	{340, 363, 397, 428, 463, 505, 536, 563, 588},   // 48
	{357, 381, 416, 447, 483, 527, 559, 587, 612.5}, // 49
	{374, 398, 435, 467, 504, 550, 583, 611, 637.5}, // 50
}
