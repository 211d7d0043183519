// Package engine hosts the uasat WebAssembly module with wazero.
//
// The uasat artifact is a core module with a string-in, string-out entry
// point. The guest ABI is:
//
//	allocate(len: i32) -> i32            guest allocator (or "alloc")
//	deallocate(ptr: i32, len: i32)       guest deallocator (or "dealloc", "free")
//	test(ptr: i32, len: i32) -> i64      entry point; result packs ptr<<32 | len
//
// The host writes the input string into guest memory via the allocator,
// invokes the entry point, copies the result out and frees both buffers.
//
// With Config.CloseOnCancel an in-flight call aborts when its context is
// canceled. The instance is closed as a side effect; callers must
// re-instantiate from the Module before the next call.
package engine
