package engine

type CommandType int

const (
	CmdPlace CommandType = iota
	CmdCancel
	CmdMatch
)

type Command struct {
	Type  CommandType
	Order *Order   // used when Type == CmdPlace
	ID    string   // order id for CmdCancel, instrument id for CmdMatch
	Resp  chan any // engine sends the result back here
}
