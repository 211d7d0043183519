package engine

// Handcrafted core modules implementing the guest ABI, assembled by hand so
// the tests need no toolchain-built fixtures.

// echoModule exports a one-page memory, allocate(i32)->i32 returning a fixed
// buffer at offset 8, and test(ptr,len)->i64 echoing its input by packing
// ptr<<32 | len. The host writes the input at the allocated offset and reads
// the same bytes back as the result.
var echoModule = []byte{
	0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00, // magic + version
	// type section: (i32)->i32, (i32,i32)->i64
	0x01, 0x0c, 0x02,
	0x60, 0x01, 0x7f, 0x01, 0x7f,
	0x60, 0x02, 0x7f, 0x7f, 0x01, 0x7e,
	// function section: allocate=type0, test=type1
	0x03, 0x03, 0x02, 0x00, 0x01,
	// memory section: min 1 page
	0x05, 0x03, 0x01, 0x00, 0x01,
	// export section: memory, allocate, test
	0x07, 0x1c, 0x03,
	0x06, 'm', 'e', 'm', 'o', 'r', 'y', 0x02, 0x00,
	0x08, 'a', 'l', 'l', 'o', 'c', 'a', 't', 'e', 0x00, 0x00,
	0x04, 't', 'e', 's', 't', 0x00, 0x01,
	// code section
	0x0a, 0x13, 0x02,
	// allocate: i32.const 8
	0x04, 0x00, 0x41, 0x08, 0x0b,
	// test: (i64(ptr) << 32) | i64(len)
	0x0c, 0x00, 0x20, 0x00, 0xad, 0x42, 0x20, 0x86, 0x20, 0x01, 0xad, 0x84, 0x0b,
}

// voidAllocModule is echoModule with a broken allocator: allocate(i32) has
// no result. It compiles and instantiates cleanly; only a call can reveal
// the bad signature.
var voidAllocModule = []byte{
	0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00, // magic + version
	// type section: (i32)->(), (i32,i32)->i64
	0x01, 0x0b, 0x02,
	0x60, 0x01, 0x7f, 0x00,
	0x60, 0x02, 0x7f, 0x7f, 0x01, 0x7e,
	// function section: allocate=type0, test=type1
	0x03, 0x03, 0x02, 0x00, 0x01,
	// memory section: min 1 page
	0x05, 0x03, 0x01, 0x00, 0x01,
	// export section: memory, allocate, test
	0x07, 0x1c, 0x03,
	0x06, 'm', 'e', 'm', 'o', 'r', 'y', 0x02, 0x00,
	0x08, 'a', 'l', 'l', 'o', 'c', 'a', 't', 'e', 0x00, 0x00,
	0x04, 't', 'e', 's', 't', 0x00, 0x01,
	// code section
	0x0a, 0x11, 0x02,
	// allocate: empty body
	0x02, 0x00, 0x0b,
	// test: (i64(ptr) << 32) | i64(len)
	0x0c, 0x00, 0x20, 0x00, 0xad, 0x42, 0x20, 0x86, 0x20, 0x01, 0xad, 0x84, 0x0b,
}
