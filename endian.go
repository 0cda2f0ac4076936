package fastpfor

import "encoding/binary"

// bo is the byte order used for every on-stream word, matching the
// teacher's convention and the reference implementation's get_u32_le /
// put_u32_le.
var bo = binary.LittleEndian
