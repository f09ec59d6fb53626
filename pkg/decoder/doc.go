// Package decoder composes sentence parsing, checksum policy, fragment
// reassembly and message extraction for one input stream.
//
//	d := decoder.New(decoder.WithLogger(logger))
//	for scanner.Scan() {
//		res, err := d.Decode(scanner.Text())
//		if err != nil || res.Pending {
//			continue
//		}
//		handle(res.Message)
//	}
//
// Use one Decoder per receiver or file. Lines from different streams
// must not be mixed through the same Decoder.
package decoder
