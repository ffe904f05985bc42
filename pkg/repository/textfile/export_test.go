package textfile

// DecodeAction is exported for testing
var DecodeAction = decodeAction

// EncodeAction is exported for testing
var EncodeAction = encodeAction
