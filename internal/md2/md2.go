// Package md2 implements the MD2 message digest (RFC 1319). MD2 protects the
// vpxcore container MAC signature; it is not available in the standard
// library or in golang.org/x/crypto, so it is implemented here in the shape
// of a stdlib hash.Hash, mirroring how crypto/md5 structures its digest type.
package md2

import "hash"

// Size is the size, in bytes, of an MD2 checksum.
const Size = 16

const blockSize = 16

// sbox is the fixed 256-byte permutation table from RFC 1319 Appendix A,
// derived from the digits of pi.
var sbox = [256]byte{
	41, 46, 67, 201, 162, 216, 124, 1, 61, 54, 84, 161, 236, 240, 6, 19,
	98, 167, 5, 243, 192, 199, 115, 140, 152, 147, 43, 217, 188, 76, 130, 202,
	30, 155, 87, 60, 253, 212, 224, 22, 103, 66, 111, 24, 138, 23, 229, 18,
	190, 78, 196, 214, 218, 158, 222, 73, 160, 251, 245, 142, 187, 47, 238, 122,
	169, 104, 121, 145, 21, 178, 7, 63, 148, 194, 16, 137, 11, 34, 95, 33,
	128, 127, 93, 154, 90, 144, 50, 39, 53, 62, 204, 231, 191, 247, 151, 3,
	255, 25, 48, 179, 72, 165, 181, 209, 215, 94, 146, 42, 172, 86, 170, 198,
	79, 184, 56, 210, 150, 164, 125, 182, 118, 252, 107, 226, 156, 116, 4, 241,
	69, 157, 112, 89, 100, 113, 135, 32, 134, 91, 207, 101, 230, 45, 168, 2,
	27, 96, 37, 173, 174, 176, 185, 246, 28, 70, 97, 105, 52, 64, 126, 15,
	85, 71, 163, 35, 221, 81, 175, 58, 195, 92, 249, 206, 186, 197, 234, 38,
	44, 83, 13, 110, 133, 40, 132, 9, 211, 223, 205, 244, 65, 129, 77, 82,
	106, 220, 55, 200, 108, 193, 171, 250, 36, 225, 123, 8, 12, 189, 177, 74,
	120, 136, 149, 139, 227, 99, 232, 109, 233, 203, 213, 254, 59, 0, 29, 57,
	242, 239, 183, 14, 102, 88, 208, 228, 166, 119, 114, 248, 235, 117, 75, 10,
	49, 68, 80, 180, 143, 237, 31, 26, 219, 153, 141, 51, 159, 17, 131, 20,
}

// digest is the MD2 hash.Hash implementation.
type digest struct {
	x       [48]byte
	check   [16]byte
	checkL  byte
	buf     [blockSize]byte
	nbuf    int
	length  uint64
}

// New returns a new hash.Hash computing the MD2 checksum.
func New() hash.Hash {
	d := new(digest)
	d.Reset()
	return d
}

func (d *digest) Reset() {
	d.x = [48]byte{}
	d.check = [16]byte{}
	d.checkL = 0
	d.buf = [blockSize]byte{}
	d.nbuf = 0
	d.length = 0
}

func (d *digest) Size() int      { return Size }
func (d *digest) BlockSize() int { return blockSize }

func (d *digest) Write(p []byte) (n int, err error) {
	n = len(p)
	d.length += uint64(n)

	if d.nbuf > 0 {
		take := blockSize - d.nbuf
		if take > len(p) {
			take = len(p)
		}
		copy(d.buf[d.nbuf:], p[:take])
		d.nbuf += take
		p = p[take:]
		if d.nbuf == blockSize {
			d.processBlock(d.buf[:])
			d.nbuf = 0
		}
	}

	for len(p) >= blockSize {
		d.processBlock(p[:blockSize])
		p = p[blockSize:]
	}

	if len(p) > 0 {
		d.nbuf = copy(d.buf[:], p)
	}

	return n, nil
}

func (d *digest) processBlock(block []byte) {
	// Update checksum. L carries over from the previous block, per RFC 1319.
	l := d.checkL
	for i := 0; i < blockSize; i++ {
		c := block[i]
		d.check[i] ^= sbox[c^l]
		l = d.check[i]
	}
	d.checkL = l

	// Update state.
	for i := 0; i < blockSize; i++ {
		d.x[blockSize+i] = block[i]
		d.x[2*blockSize+i] = d.x[blockSize+i] ^ d.x[i]
	}

	var t byte
	for round := 0; round < 18; round++ {
		for i := 0; i < 48; i++ {
			d.x[i] ^= sbox[t]
			t = d.x[i]
		}
		t = t + byte(round)
	}
}

// Sum appends the current hash to b and returns the resulting slice. It does
// not mutate the underlying digest state beyond padding/finalizing a copy.
func (d0 *digest) Sum(in []byte) []byte {
	d := *d0
	pad := blockSize - d.nbuf
	padding := make([]byte, pad)
	for i := range padding {
		padding[i] = byte(pad)
	}
	d.Write(padding)
	check := d.check
	d.Write(check[:])

	var out [Size]byte
	copy(out[:], d.x[:blockSize])
	return append(in, out[:]...)
}

// Sum2 computes the MD2 checksum of data in one call.
func Sum2(data []byte) [Size]byte {
	d := New()
	_, _ = d.Write(data)
	var out [Size]byte
	copy(out[:], d.Sum(nil))
	return out
}
