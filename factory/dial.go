package factory

import (
	"fmt"

	"github.com/allape/openspin/config"
	"github.com/allape/openspin/spin/dial"
	"github.com/allape/openspin/spin/dial/serialport"
)

const DefaultBaud = 9600

func DialFromConfig(conf config.Config) (dd dial.Driver, err error) {
	switch conf.Dial.Type {
	case config.DialNone, "":
		l.Verbose().Println("dial driver is none, no dial input")
		return nil, nil
	case config.DialSerialPort:
		l.Info().Println("dial driver is serial port:", conf.Dial.Src)
		baud, err := conf.Dial.Ext.GetBaud(DefaultBaud)
		if err != nil {
			return nil, err
		}
		dd = serialport.New(conf.Dial.Src, baud)
	default:
		return nil, fmt.Errorf("unknown dial driver: %s", conf.Dial.Type)
	}

	err = dd.Open()
	if err != nil {
		return nil, err
	}

	return dd, nil
}
