package abi

import (
	"fmt"
	"math/big"
	"reflect"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/trebuchet-org/minion/internal/domain"
)

// ParseSignature turns a human-readable signature such as "mint(address)"
// into an ABI method
func ParseSignature(signature string) (abi.Method, error) {
	signature = strings.TrimSpace(signature)
	open := strings.Index(signature, "(")
	if open <= 0 || !strings.HasSuffix(signature, ")") {
		return abi.Method{}, domain.Errorf(domain.ErrInvalidInput, "malformed signature %q", signature)
	}
	name := signature[:open]
	inner := signature[open+1 : len(signature)-1]

	if strings.ContainsAny(inner, "()") {
		return abi.Method{}, domain.Errorf(domain.ErrInvalidInput, "tuple arguments are not supported in %s", signature)
	}

	var inputs abi.Arguments
	if strings.TrimSpace(inner) != "" {
		for i, raw := range strings.Split(inner, ",") {
			typ, err := abi.NewType(strings.TrimSpace(raw), "", nil)
			if err != nil {
				return abi.Method{}, domain.Errorf(domain.ErrInvalidInput, "argument %d of %s: %v", i, signature, err)
			}
			inputs = append(inputs, abi.Argument{Name: fmt.Sprintf("arg%d", i), Type: typ})
		}
	}

	return abi.NewMethod(name, name, abi.Function, "nonpayable", false, false, inputs, nil), nil
}

// EncodeCall ABI-encodes a call from a signature and string arguments
func EncodeCall(signature string, args ...string) ([]byte, error) {
	method, err := ParseSignature(signature)
	if err != nil {
		return nil, err
	}
	if len(args) != len(method.Inputs) {
		return nil, domain.Errorf(domain.ErrInvalidInput, "%s takes %d arguments, got %d", method.Sig, len(method.Inputs), len(args))
	}

	values := make([]interface{}, len(args))
	for i, arg := range args {
		v, err := convertArg(method.Inputs[i].Type, arg)
		if err != nil {
			return nil, domain.Errorf(domain.ErrInvalidInput, "argument %d of %s: %v", i, method.Sig, err)
		}
		values[i] = v
	}

	packed, err := method.Inputs.Pack(values...)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", method.Sig, err)
	}
	return append(append([]byte{}, method.ID...), packed...), nil
}

// Pack encodes a call against a parsed contract ABI
func Pack(contract abi.ABI, method string, args ...interface{}) ([]byte, error) {
	data, err := contract.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", method, err)
	}
	return data, nil
}

// DecodeCall resolves calldata to a method of contract and unpacks its inputs
func DecodeCall(contract abi.ABI, data []byte) (*abi.Method, []interface{}, error) {
	if len(data) < 4 {
		return nil, nil, fmt.Errorf("calldata too short: %d bytes", len(data))
	}
	method, err := contract.MethodById(data[:4])
	if err != nil {
		return nil, nil, err
	}
	args, err := method.Inputs.Unpack(data[4:])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode %s: %w", method.Sig, err)
	}
	return method, args, nil
}

// Describe renders calldata as "sig(args)" when the method is known to
// contract, and as a hex selector otherwise
func Describe(contract abi.ABI, data []byte) string {
	method, args, err := DecodeCall(contract, data)
	if err != nil {
		if len(data) >= 4 {
			return hexutil.Encode(data[:4])
		}
		return hexutil.Encode(data)
	}
	parts := make([]string, len(args))
	for i, a := range args {
		switch v := a.(type) {
		case common.Address:
			parts[i] = v.Hex()
		default:
			parts[i] = fmt.Sprint(v)
		}
	}
	return fmt.Sprintf("%s(%s)", method.RawName, strings.Join(parts, ", "))
}

func convertArg(t abi.Type, arg string) (interface{}, error) {
	switch t.T {
	case abi.AddressTy:
		if !common.IsHexAddress(arg) {
			return nil, domain.ErrInvalidAddress
		}
		return common.HexToAddress(arg), nil
	case abi.BoolTy:
		return strconv.ParseBool(arg)
	case abi.StringTy:
		return arg, nil
	case abi.BytesTy:
		return hexutil.Decode(arg)
	case abi.FixedBytesTy:
		raw, err := hexutil.Decode(arg)
		if err != nil {
			return nil, err
		}
		if len(raw) > t.Size {
			return nil, fmt.Errorf("%d bytes do not fit bytes%d", len(raw), t.Size)
		}
		out := reflect.New(t.GetType()).Elem()
		reflect.Copy(out, reflect.ValueOf(raw))
		return out.Interface(), nil
	case abi.UintTy, abi.IntTy:
		n, ok := new(big.Int).SetString(arg, 0)
		if !ok {
			return nil, fmt.Errorf("invalid integer %q", arg)
		}
		if t.T == abi.UintTy && n.Sign() < 0 {
			return nil, fmt.Errorf("negative value for %s", t.String())
		}
		if t.Size > 64 {
			return n, nil
		}
		if t.T == abi.UintTy {
			if n.BitLen() > t.Size {
				return nil, fmt.Errorf("%s overflows %s", arg, t.String())
			}
			return reflect.ValueOf(n.Uint64()).Convert(t.GetType()).Interface(), nil
		}
		if n.BitLen() >= t.Size {
			return nil, fmt.Errorf("%s overflows %s", arg, t.String())
		}
		return reflect.ValueOf(n.Int64()).Convert(t.GetType()).Interface(), nil
	default:
		return nil, fmt.Errorf("unsupported argument type %s", t.String())
	}
}
