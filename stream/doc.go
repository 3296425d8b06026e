// Package stream turns raw response bodies into plain text. It covers the
// three protocol concerns the upstream cannot be trusted to signal reliably:
//
//   - Sniffing: deciding from the first bytes of a body whether it is a single
//     JSON document or an incremental event stream, because intermediary
//     proxies omit or mislabel content-type headers.
//   - Decoding: reassembling an event stream into blank-line-delimited event
//     blocks, tolerating arbitrary chunk boundaries and multiple upstream
//     schema variants, and accumulating incremental text deltas.
//   - Extraction: pulling the best available text out of a complete response
//     envelope, trying several known document shapes in order.
//
// All schema-tolerant lookups go through gjson so unknown sibling fields and
// shape drift in upstream payloads never break decoding.
package stream
