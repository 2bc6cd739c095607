// Package jpegquality estimates the quality setting a JPEG image was saved
// with by inspecting its quantization tables. The estimate follows the same
// threshold matching ImageMagick uses, so results line up with what
// "identify -format %Q" reports for images produced by libjpeg compatible
// encoders.
package jpegquality

import (
	"bytes"
	"errors"
	"io"
)

// Errors reported while parsing JFIF segments.
var (
	ErrInvalidJPEG  = errors.New("invalid JPEG header")
	ErrWrongTable   = errors.New("wrong size for quantization table")
	ErrShortSegment = errors.New("short segment length")
	ErrShortDQT     = errors.New("section DQT is too short")
	ErrNoDQT        = errors.New("no DQT section found")
)

const (
	markerSOI = 0xffd8
	markerEOI = 0xffd9
	markerSOS = 0xffda
	markerDQT = 0xffdb
)

type jpegReader struct {
	rs io.ReadSeeker
	q  int
}

// New reads enough of the stream to estimate the saved quality. The reader
// is rewound first, so a stream that has already been consumed by image
// decoding can be passed as is.
func New(rs io.ReadSeeker) (*jpegReader, error) {
	jr := &jpegReader{rs: rs}
	if _, err := jr.rs.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	var sign [2]byte
	if _, err := io.ReadFull(jr.rs, sign[:]); err != nil {
		return nil, err
	}
	if sign[0] != 0xff || sign[1] != 0xd8 {
		return nil, ErrInvalidJPEG
	}

	q, err := jr.readQuality()
	if err != nil {
		return nil, err
	}
	jr.q = q
	return jr, nil
}

// NewWithBytes is like New for an image kept in memory.
func NewWithBytes(buf []byte) (*jpegReader, error) {
	return New(bytes.NewReader(buf))
}

// Quality returns the estimated encoder quality setting, 1 to 100. Zero
// means the tables did not match any known quality and the estimate is
// undetermined.
func (jr *jpegReader) Quality() int {
	return jr.q
}

func (jr *jpegReader) readQuality() (int, error) {
	var tables [4][]int

scan:
	for {
		marker := jr.readMarker()
		switch {
		case marker == 0:
			if tables[0] == nil && tables[1] == nil {
				return 0, ErrInvalidJPEG
			}
			break scan
		case marker == markerEOI || marker == markerSOS:
			// Quantization tables always precede the entropy coded data.
			break scan
		case marker == markerSOI || marker&^0x07 == 0xffd0:
			// Standalone markers carry no payload.
			continue
		}

		length, err := jr.readLength()
		if err != nil {
			return 0, err
		}
		body := make([]byte, length)
		if _, err := io.ReadFull(jr.rs, body); err != nil {
			return 0, err
		}
		if marker != markerDQT {
			continue
		}
		if err := parseDQT(body, &tables); err != nil {
			return 0, err
		}
	}
	return estimateQuality(&tables)
}

// readMarker scans for the next JFIF marker, skipping fill bytes. It returns
// 0 once the stream is exhausted.
func (jr *jpegReader) readMarker() int {
	var buf [2]byte

	for {
		if _, err := io.ReadFull(jr.rs, buf[:]); err != nil {
			return 0
		}
		if buf[0] == 0xff && buf[1] != 0xff && buf[1] != 0x00 {
			return int(buf[0])<<8 | int(buf[1])
		}
		// Desynchronized or padded, advance one byte and retry.
		if _, err := jr.rs.Seek(-1, io.SeekCurrent); err != nil {
			return 0
		}
	}
}

// readLength reads a segment length and returns the byte count of the
// payload that follows it.
func (jr *jpegReader) readLength() (int, error) {
	var buf [2]byte
	if _, err := io.ReadFull(jr.rs, buf[:]); err != nil {
		return 0, err
	}
	length := int(buf[0])<<8 | int(buf[1])
	if length < 2 {
		return 0, ErrShortSegment
	}
	return length - 2, nil
}

// parseDQT collects quantization tables from a DQT payload. A single segment
// may define several tables, each led by a precision and index byte. Values
// are stored in natural order.
func parseDQT(body []byte, tables *[4][]int) error {
	if len(body) < 65 {
		return ErrShortDQT
	}

	for len(body) > 0 {
		precision := int(body[0]) >> 4
		index := int(body[0]) & 0x0f
		if index > 3 {
			return ErrWrongTable
		}
		body = body[1:]

		n := 64
		if precision != 0 {
			n = 128
		}
		if len(body) < n {
			return ErrWrongTable
		}

		table := make([]int, 64)
		for i := range 64 {
			if precision != 0 {
				table[unzigzag[i]] = int(body[2*i])<<8 | int(body[2*i+1])
			} else {
				table[unzigzag[i]] = int(body[i])
			}
		}
		tables[index] = table
		body = body[n:]
	}
	return nil
}

// estimateQuality maps table contents to the closest libjpeg quality setting
// using ImageMagick's precomputed thresholds. The sums of all tables and a
// few probe values together identify the scaling that was applied to the
// standard tables.
func estimateQuality(tables *[4][]int) (int, error) {
	sum := 0
	for _, t := range tables {
		for _, v := range t {
			sum += v
		}
	}

	var (
		qvalue     int
		hash, sums []int
	)
	switch {
	case tables[0] != nil && tables[1] != nil:
		qvalue = tables[0][2] + tables[0][53] + tables[1][0] + tables[1][63]
		hash, sums = twoTableHash[:], twoTableSums[:]
	case tables[0] != nil:
		qvalue = tables[0][2] + tables[0][53]
		hash, sums = oneTableHash[:], oneTableSums[:]
	default:
		return 0, ErrNoDQT
	}

	for i := range 100 {
		if qvalue < hash[i] && sum < sums[i] {
			continue
		}
		if (qvalue <= hash[i] && sum <= sums[i]) || i >= 50 {
			return i + 1, nil
		}
		break
	}
	return 0, nil
}

// unzigzag maps the storage order of quantization values to natural
// row-major positions.
var unzigzag = [64]int{
	0, 1, 8, 16, 9, 2, 3, 10,
	17, 24, 32, 25, 18, 11, 4, 5,
	12, 19, 26, 33, 40, 48, 41, 34,
	27, 20, 13, 6, 7, 14, 21, 28,
	35, 42, 49, 56, 57, 50, 43, 36,
	29, 22, 15, 23, 30, 37, 44, 51,
	58, 59, 52, 45, 38, 31, 39, 46,
	53, 60, 61, 54, 47, 55, 62, 63,
}

var twoTableHash = [101]int{
	1020, 1015, 932, 848, 780, 735, 702, 679, 660, 645,
	632, 623, 613, 607, 600, 594, 589, 585, 581, 571,
	555, 542, 529, 514, 494, 474, 457, 439, 424, 410,
	397, 386, 373, 364, 351, 341, 334, 324, 317, 309,
	299, 294, 287, 279, 274, 267, 262, 257, 251, 247,
	243, 237, 232, 227, 222, 217, 213, 207, 202, 198,
	192, 188, 183, 177, 173, 168, 163, 157, 153, 148,
	143, 139, 132, 128, 125, 119, 115, 108, 104, 99,
	94, 90, 84, 79, 74, 70, 64, 59, 55, 49,
	45, 40, 34, 30, 25, 20, 15, 11, 6, 4,
	0,
}

var twoTableSums = [101]int{
	32640, 32635, 32266, 31495, 30665, 29804, 29146, 28599, 28104,
	27670, 27225, 26725, 26210, 25716, 25240, 24789, 24373, 23946,
	23572, 22846, 21801, 20842, 19949, 19121, 18386, 17651, 16998,
	16349, 15800, 15247, 14783, 14321, 13859, 13535, 13081, 12702,
	12423, 12056, 11779, 11513, 11135, 10955, 10676, 10392, 10208,
	9928, 9747, 9564, 9369, 9193, 9017, 8822, 8639, 8458,
	8270, 8084, 7896, 7710, 7527, 7347, 7156, 6977, 6788,
	6607, 6422, 6236, 6054, 5867, 5684, 5495, 5305, 5128,
	4945, 4751, 4638, 4442, 4248, 4065, 3888, 3698, 3509,
	3326, 3139, 2957, 2775, 2586, 2405, 2216, 2037, 1846,
	1666, 1483, 1297, 1109, 927, 735, 554, 375, 201,
	128, 0,
}

var oneTableHash = [101]int{
	510, 505, 422, 380, 355, 338, 326, 318, 311, 305,
	300, 297, 293, 291, 288, 286, 284, 283, 281, 280,
	279, 278, 277, 273, 262, 251, 243, 233, 225, 218,
	211, 205, 198, 193, 186, 181, 177, 172, 168, 164,
	158, 156, 152, 148, 145, 142, 139, 136, 133, 131,
	129, 126, 123, 120, 118, 115, 113, 110, 107, 105,
	102, 100, 98, 94, 92, 89, 87, 83, 81, 79,
	76, 74, 70, 68, 66, 63, 61, 57, 55, 52,
	50, 48, 44, 42, 39, 37, 34, 31, 29, 26,
	24, 21, 18, 16, 13, 11, 8, 6, 3, 2,
	0,
}

var oneTableSums = [101]int{
	16320, 16315, 15946, 15277, 14655, 14073, 13623, 13230, 12859,
	12560, 12240, 11861, 11456, 11081, 10714, 10360, 10027, 9679,
	9368, 9056, 8680, 8331, 7995, 7668, 7376, 7084, 6823,
	6562, 6345, 6125, 5939, 5756, 5571, 5421, 5240, 5086,
	4976, 4829, 4719, 4616, 4463, 4393, 4280, 4166, 4092,
	3980, 3909, 3835, 3755, 3688, 3621, 3541, 3467, 3396,
	3323, 3247, 3170, 3096, 3021, 2952, 2874, 2804, 2727,
	2657, 2583, 2509, 2437, 2362, 2290, 2211, 2136, 2068,
	1996, 1915, 1858, 1773, 1692, 1620, 1552, 1477, 1398,
	1326, 1251, 1179, 1109, 1031, 961, 884, 814, 736,
	667, 592, 518, 441, 369, 292, 221, 151, 86,
	64, 0,
}
