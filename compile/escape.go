package compile

import "github.com/jdavis-research/memoregex/inst"

// escapeRanges implements the escape-to-char-range table from spec.md
// §4.3: single-byte ranges, inverted when the escape letter is
// upper-case. Any letter not in the table is treated as a literal
// single-character escape (e.g. "\." -> the byte '.').
func escapeRanges(ch byte) (ranges []inst.CharRange, invert bool) {
	switch ch {
	case 's':
		return []inst.CharRange{{Lo: 9, Hi: 13}, {Lo: 28, Hi: 32}}, false
	case 'S':
		return []inst.CharRange{{Lo: 9, Hi: 13}, {Lo: 28, Hi: 32}}, true
	case 'w':
		return wordRanges(), false
	case 'W':
		return wordRanges(), true
	case 'd':
		return []inst.CharRange{{Lo: '0', Hi: '9'}}, false
	case 'D':
		return []inst.CharRange{{Lo: '0', Hi: '9'}}, true
	case 'n', 'r':
		return []inst.CharRange{{Lo: '\n', Hi: '\n'}}, false
	case 't':
		return []inst.CharRange{{Lo: '\t', Hi: '\t'}}, false
	case 'f':
		return []inst.CharRange{{Lo: '\f', Hi: '\f'}}, false
	case 'v':
		return []inst.CharRange{{Lo: '\v', Hi: '\v'}}, false
	default:
		return []inst.CharRange{{Lo: ch, Hi: ch}}, false
	}
}

func wordRanges() []inst.CharRange {
	return []inst.CharRange{
		{Lo: 'a', Hi: 'z'},
		{Lo: 'A', Hi: 'Z'},
		{Lo: '0', Hi: '9'},
	}
}
